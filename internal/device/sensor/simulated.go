package sensor

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

// Default values for a simulated room.
const (
	defaultBaseHumidity    = 80.0
	defaultBaseTemperature = 22.0
	humidityStep           = 2.5
	temperatureStep        = 0.2
)

// SimulatedOptions configures a Simulated sensor.
type SimulatedOptions struct {
	// Script, when not empty, is replayed in a loop as the humidity sequence.
	Script []float64
	// FailureRate is the probability in [0, 1] that a transaction fails.
	FailureRate float64
	// Seed makes the random walk and failures reproducible.
	Seed uint64
}

// Simulated is a drifting humidity source for hosts without a sensor.
type Simulated struct {
	mu          sync.Mutex
	rng         *rand.Rand
	script      []float64
	next        int
	failureRate float64
	humidity    float64
	temperature float64
	walk        float64
}

// NewSimulated creates a simulated sensor.
func NewSimulated(opts SimulatedOptions) *Simulated {
	return &Simulated{
		rng:         rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)), //nolint:gosec // Not security relevant.
		script:      append([]float64(nil), opts.Script...),
		failureRate: math.Max(0, math.Min(1, opts.FailureRate)),
		walk:        defaultBaseHumidity,
		temperature: defaultBaseTemperature,
	}
}

// Measure implements Sensor.
func (s *Simulated) Measure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failureRate > 0 && s.rng.Float64() < s.failureRate {
		return fmt.Errorf("%w: simulated checksum mismatch", ErrTransient)
	}

	if len(s.script) > 0 {
		s.humidity = s.script[s.next%len(s.script)]
		s.next++
	} else {
		s.walk = clamp(s.walk+s.rng.NormFloat64()*humidityStep, 0, 100)
		s.humidity = s.walk
	}

	s.temperature += s.rng.NormFloat64() * temperatureStep

	return nil
}

// Humidity implements Sensor.
func (s *Simulated) Humidity() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.humidity
}

// Temperature implements Sensor.
func (s *Simulated) Temperature() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.temperature
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
