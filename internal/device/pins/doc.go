// Package pins adapts periph.io GPIO lines to the two roles the controller
// needs: digital outputs for the LED and buzzer, and an edge-triggered
// input for the acknowledgement button.
//
// On a board the lines come from the periph.io host drivers; on a host
// without GPIO, simulated lines from gpiotest are used instead.
package pins
