// Package sensor provides humidity/temperature sources behind the Sensor
// interface: a BME280 on I2C driven through periph.io, and a simulated
// source for hosts without hardware.
package sensor
