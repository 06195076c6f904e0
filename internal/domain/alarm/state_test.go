package alarm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	aboveThreshold = []float64{90.000001, 90.1, 91, 95, 99.9, 100}
	atOrBelow      = []float64{-5, 0, 20.5, 85, 89.99, 90}
	allStates      = []State{Idle, Triggered}
)

// TestDecide_TriggersFromIdle verifies high humidity without acknowledgement triggers an idle alarm.
func TestDecide_TriggersFromIdle(t *testing.T) {
	t.Parallel()

	for _, h := range aboveThreshold {
		require.Equal(t, Triggered, Decide(h, false, Idle), "humidity %v", h)
	}
}

// TestDecide_IdleAtOrBelowThreshold verifies the alarm clears whenever humidity is not above the threshold.
func TestDecide_IdleAtOrBelowThreshold(t *testing.T) {
	t.Parallel()

	for _, h := range atOrBelow {
		for _, ack := range []bool{false, true} {
			for _, current := range allStates {
				require.Equal(t, Idle, Decide(h, ack, current), "humidity %v ack %v current %v", h, ack, current)
			}
		}
	}
}

// TestDecide_AcknowledgedIsIdle verifies an acknowledgement silences the alarm at any humidity.
func TestDecide_AcknowledgedIsIdle(t *testing.T) {
	t.Parallel()

	for _, h := range aboveThreshold {
		for _, current := range allStates {
			require.Equal(t, Idle, Decide(h, true, current), "humidity %v current %v", h, current)
		}
	}
}

// TestDecide_StaysTriggered verifies the already-triggered branch keeps the alarm on.
func TestDecide_StaysTriggered(t *testing.T) {
	t.Parallel()

	require.Equal(t, Triggered, Decide(95, false, Triggered))
}

// TestDecide_Idempotent checks that repeating identical inputs yields identical results.
func TestDecide_Idempotent(t *testing.T) {
	t.Parallel()

	humidities := append(append([]float64{}, aboveThreshold...), atOrBelow...)

	for _, h := range humidities {
		for _, ack := range []bool{false, true} {
			for _, current := range allStates {
				first := Decide(h, ack, current)
				second := Decide(h, ack, current)
				require.Equal(t, first, second)
			}
		}
	}
}

// TestStateString covers the known names and the fallback.
func TestStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "triggered", Triggered.String())
	require.Equal(t, "state(7)", State(7).String())
}

// TestReadingString checks the console format and the nil case.
func TestReadingString(t *testing.T) {
	t.Parallel()

	r := &Reading{
		Humidity:    93.26,
		Temperature: 21,
	}

	require.Equal(t, "Humidity = 93.3%, Temperature = 21.0C", r.String())
	require.InDelta(t, 69.8, r.Fahrenheit(), 1e-9)
	require.Equal(t, "no reading", (*Reading)(nil).String())
}
