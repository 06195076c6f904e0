// Package config defines the controller settings and provides helpers to
// load, validate and save them in YAML format.
//
// Settings cover GPIO line names, the sensor driver and the size of the
// CPU bursts. Environment variables (optionally from a .env file) override
// the log level and the sensor driver.
package config
