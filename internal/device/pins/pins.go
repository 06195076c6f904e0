package pins

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/host/v3"
)

// Switch is a digital output. periph.io gpio.PinOut satisfies it.
type Switch interface {
	Out(l gpio.Level) error
}

// EdgeSource is a digital input able to report edges. periph.io gpio.PinIn satisfies it.
type EdgeSource interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	WaitForEdge(timeout time.Duration) bool
}

// edgePollTimeout bounds a single WaitForEdge call so the watcher notices cancellation.
const edgePollTimeout = 250 * time.Millisecond

// simulatedEdgeBuffer is how many injected edges a simulated input can queue.
const simulatedEdgeBuffer = 8

// ErrPinNotFound is returned when the GPIO registry has no line with the requested name.
var ErrPinNotFound = errors.New("gpio pin not found")

// InitHost loads the periph.io host drivers. It must run before ByName.
func InitHost() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("init periph host: %w", err)
	}

	return nil
}

// ByName looks up a GPIO line, e.g. "GPIO22".
//
//nolint:ireturn // The registry hands out the gpio.PinIO interface.
func ByName(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, name)
	}

	return p, nil
}

// NewSimulated returns an in-memory line whose edges are injected with Pulse.
func NewSimulated(name string, number int) *gpiotest.Pin {
	return &gpiotest.Pin{
		N:         name,
		Num:       number,
		L:         gpio.Low,
		EdgesChan: make(chan gpio.Level, simulatedEdgeBuffer),
	}
}

// Pulse injects a rising edge on a simulated line. It never blocks; an edge
// is dropped when the queue is full, like a bounce the hardware merged.
func Pulse(p *gpiotest.Pin) bool {
	select {
	case p.EdgesChan <- gpio.High:
		return true
	default:
		return false
	}
}

// WatchEdges configures src as a pulled-down input with rising-edge
// detection and calls handler for every edge until ctx is cancelled.
//
// The watcher goroutine is locked to its own OS thread so that goroutines
// burning CPU elsewhere cannot delay the handler. The returned channel is
// closed once the watcher has stopped.
func WatchEdges(ctx context.Context, src EdgeSource, handler func()) (<-chan struct{}, error) {
	if err := src.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return nil, fmt.Errorf("configure edge input: %w", err)
	}

	done := make(chan struct{})

	go func() {
		defer close(done)

		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		for ctx.Err() == nil {
			if src.WaitForEdge(edgePollTimeout) && ctx.Err() == nil {
				handler()
			}
		}
	}()

	return done, nil
}
