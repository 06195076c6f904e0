// Package alarm contains the core domain types of the humidity alarm.
//
// It defines the sensor Reading, the alarm State and Decide, the pure
// transition function that turns a humidity sample and the acknowledgement
// flag into the next state. Nothing in this package touches hardware.
package alarm
