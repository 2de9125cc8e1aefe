// Package commanderpro drives the fans of a Corsair Commander Pro
// over USB, using one of its temperature probes as sensor.
package commanderpro

import (
	"context"
	"fmt"
	"math"
	"strings"
)

type cmd byte

// Config selects the probe and the fan channels,
// channels are driven together.
type Config struct {
	// Sensor is the temperature probe, 0-3.
	Sensor TempSensor `yaml:"sensor"`

	// Channels are the fan channels, 0-5.
	Channels []FanCh `yaml:"channels"`
}

// DefaultConfig reads probe 1 and drives every channel.
func DefaultConfig() Config {
	return Config{
		Sensor:   TempSensor1,
		Channels: []FanCh{FanCh1, FanCh2, FanCh3, FanCh4, FanCh5, FanCh6},
	}
}

func (c Config) validate() error {
	if c.Sensor > TempSensor4 {
		return fmt.Errorf("no such temperature sensor: %d", c.Sensor)
	}
	if len(c.Channels) == 0 {
		return fmt.Errorf("no fan channel configured")
	}
	for _, ch := range c.Channels {
		if ch > FanCh6 {
			return fmt.Errorf("no such fan channel: %d", ch)
		}
	}
	return nil
}

type CommanderPro struct {
	link   link
	config Config
}

// Open opens the first Commander Pro found on the USB bus.
func Open(config Config) (*CommanderPro, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	l, err := openUSB()
	if err != nil {
		return nil, err
	}

	return &CommanderPro{link: l, config: config}, nil
}

// packet returns an empty command packet starting with c.
func (cp *CommanderPro) packet(c cmd, args ...byte) []byte {
	p := make([]byte, cp.link.packetSize())
	p[0] = byte(c)
	copy(p[1:], args)
	return p
}

func (cp *CommanderPro) Name() string {
	return "commanderpro"
}

func (cp *CommanderPro) Close() error {
	return cp.link.Close()
}

func (cp *CommanderPro) ReadTemperature(_ context.Context) (int, error) {
	temp, err := cp.getTemp(cp.config.Sensor)
	if err != nil {
		return 0, fmt.Errorf("error reading temperature sensor %d: %w", cp.config.Sensor, err)
	}
	return int(math.Round(temp)), nil
}

func (cp *CommanderPro) SetFanSpeed(_ context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("invalid duty cycle %d%%", percent)
	}

	for _, ch := range cp.config.Channels {
		if err := cp.setChannelDutyCycle(ch, uint8(percent)); err != nil {
			return fmt.Errorf("error setting duty cycle for channel '%v' to %d%%, err: %w", ch, percent, err)
		}
	}
	return nil
}

// StatusSummary lists the connected probes temperatures
// and the configured channels speeds.
func (cp *CommanderPro) StatusSummary(_ context.Context) (string, error) {
	connected, err := cp.connectedSensors()
	if err != nil {
		return "", fmt.Errorf("error reading connected sensors: %w", err)
	}

	var sb strings.Builder
	for i, ok := range connected {
		if !ok {
			continue
		}
		temp, err := cp.getTemp(TempSensor(i))
		if err != nil {
			return "", fmt.Errorf("error reading temperature sensor %d: %w", i, err)
		}
		fmt.Fprintf(&sb, "Temp %d | %.2f degrees C\n", i+1, temp)
	}

	for _, ch := range cp.config.Channels {
		rpm, err := cp.getChannelRPM(ch)
		if err != nil {
			return "", fmt.Errorf("error reading fan channel %d: %w", ch, err)
		}
		fmt.Fprintf(&sb, "Fan %d  | %d RPM\n", ch+1, rpm)
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
