package pins

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

var errTestConfigure = errors.New("test configure error")

// brokenInput fails to configure.
type brokenInput struct{}

func (brokenInput) In(gpio.Pull, gpio.Edge) error   { return errTestConfigure }
func (brokenInput) WaitForEdge(time.Duration) bool { return false }

// TestWatchEdges_CallsHandler verifies every injected edge reaches the handler and the watcher stops on cancel.
func TestWatchEdges_CallsHandler(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	button := NewSimulated("BUTTON", 20)
	ctx, cancel := context.WithCancel(context.Background())

	done, err := WatchEdges(ctx, button, func() { calls.Add(1) })
	require.NoError(t, err)

	require.True(t, Pulse(button))
	require.True(t, Pulse(button))

	require.Eventually(t, func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

// TestWatchEdges_ConfiguresPullDown checks the input is set up before watching.
func TestWatchEdges_ConfiguresPullDown(t *testing.T) {
	t.Parallel()

	button := NewSimulated("BUTTON", 20)
	ctx, cancel := context.WithCancel(context.Background())

	done, err := WatchEdges(ctx, button, func() {})
	require.NoError(t, err)

	button.Lock()
	pull := button.P
	button.Unlock()

	require.Equal(t, gpio.PullDown, pull)

	cancel()
	<-done
}

// TestWatchEdges_ConfigureError ensures a configuration failure is returned and nothing is started.
func TestWatchEdges_ConfigureError(t *testing.T) {
	t.Parallel()

	done, err := WatchEdges(context.Background(), brokenInput{}, func() {})
	require.ErrorIs(t, err, errTestConfigure)
	require.Nil(t, done)
}

// TestPulse_DropsWhenFull verifies Pulse never blocks on a full queue.
func TestPulse_DropsWhenFull(t *testing.T) {
	t.Parallel()

	button := NewSimulated("BUTTON", 20)
	for range simulatedEdgeBuffer {
		require.True(t, Pulse(button))
	}

	require.False(t, Pulse(button))
}

// TestByName_Unknown verifies the registry miss is reported with ErrPinNotFound.
func TestByName_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ByName("NO_SUCH_LINE_42")
	require.ErrorIs(t, err, ErrPinNotFound)
}
