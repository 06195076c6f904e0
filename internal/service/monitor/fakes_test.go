package monitor

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/givddul/humidity-alarm/internal/device/sensor"
)

var errTestBus = errors.New("test bus error")

// fakeClock advances instantly. Every After call records the duration and
// runs onSleep synchronously, which lets a test act "during" a wait.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  []time.Duration
	onSleep func(d time.Duration)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	now, hook := c.now, c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(d)
	}

	ch := make(chan time.Time, 1)
	ch <- now

	return ch
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Duration(nil), c.sleeps...)
}

// recordingPin remembers every level written to it.
type recordingPin struct {
	mu     sync.Mutex
	level  gpio.Level
	writes []gpio.Level
	err    error
	onOut  func(l gpio.Level)
}

func (p *recordingPin) Out(l gpio.Level) error {
	p.mu.Lock()
	p.level = l
	p.writes = append(p.writes, l)
	err, hook := p.err, p.onOut
	p.mu.Unlock()

	if hook != nil {
		hook(l)
	}

	return err
}

func (p *recordingPin) Level() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.level
}

func (p *recordingPin) Writes() []gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]gpio.Level(nil), p.writes...)
}

// step is one scripted sensor transaction.
type step struct {
	humidity float64
	fail     bool
}

func ok(h float64) step { return step{humidity: h} }

func fail() step { return step{fail: true} }

// scriptedSensor replays steps and repeats the last one forever.
type scriptedSensor struct {
	mu       sync.Mutex
	steps    []step
	calls    int
	humidity float64
}

var _ sensor.Sensor = (*scriptedSensor)(nil)

func (s *scriptedSensor) Measure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.steps[min(s.calls, len(s.steps)-1)]
	s.calls++

	if st.fail {
		return fmt.Errorf("%w: %w", sensor.ErrTransient, errTestBus)
	}

	s.humidity = st.humidity

	return nil
}

func (s *scriptedSensor) Humidity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.humidity
}

func (s *scriptedSensor) Temperature() float64 { return 21.5 }

func (s *scriptedSensor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// rig wires a loop to fakes.
type rig struct {
	clock  *fakeClock
	led    *recordingPin
	buzzer *recordingPin
	sensor *scriptedSensor
	button *Button
	loop   *Loop
}

func newRig(steps ...step) *rig {
	r := &rig{
		clock:  newFakeClock(),
		led:    new(recordingPin),
		buzzer: new(recordingPin),
		sensor: &scriptedSensor{steps: steps},
	}

	outputs := NewAlarm(r.led, r.buzzer)
	r.button = NewButton(outputs, r.clock)
	r.loop = NewLoop(NewReader(r.sensor, r.clock), outputs, r.button, r.clock)

	return r
}
