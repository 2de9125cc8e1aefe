// Package control drives a fan from temperature samples: parameter
// validation, the periodic auto-control loop with clear-air purges,
// and the fixed and info one-shot operations.
package control

import (
	"context"
	"errors"
)

//go:generate mockgen -destination mock_fan_test.go -package control -write_package_comment=false github.com/oblq/ipmifc/internal/control Fan

// Fan is the sensor/actuator pair driven by this package.
// Any transport (ipmitool, USB, ...) may implement it.
type Fan interface {
	// Name identifies the transport in logs.
	Name() string

	// ReadTemperature returns the current temperature in °C.
	ReadTemperature(ctx context.Context) (int, error)

	// SetFanSpeed sets the fan duty cycle, in percent (0-100).
	SetFanSpeed(ctx context.Context, percent int) error

	// StatusSummary returns a human readable temperature and fan report.
	StatusSummary(ctx context.Context) (string, error)
}

var (
	// ErrSensorRead marks a temperature sample that could not be obtained.
	ErrSensorRead = errors.New("failed to get temperature")

	// ErrActuatorWrite marks a rejected speed command.
	ErrActuatorWrite = errors.New("failed to set fan speed")

	// ErrStatusRead marks a status summary that could not be obtained.
	ErrStatusRead = errors.New("failed to get info")
)
