// Package monitor runs the humidity alarm controller.
//
// A periodic control loop samples the sensor through a bounded retry,
// decides the alarm state and drives the LED and buzzer. An edge-triggered
// button handler silences the alarm from its own goroutine by flipping an
// atomic acknowledgement flag and forcing the outputs off; only the loop
// clears the flag again, after a fixed debounce hold. Background workers
// burn CPU alongside to show that neither path is starved.
package monitor
