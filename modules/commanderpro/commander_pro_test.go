package commanderpro

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeDevice emulates the Commander Pro firmware for the commands in use.
type fakeDevice struct {
	temps  [4]uint16 // hundredths of degree, 0 when disconnected
	rpms   [6]uint16
	modes  [6]FanMode
	duty   [6]uint8
	sent   [][]byte
	failOn cmd
	closed bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		temps: [4]uint16{3450, 0, 4012, 0},
		rpms:  [6]uint16{1200, 1180, 0, 0, 0, 0},
		modes: [6]FanMode{FanMode4Pin, FanMode4Pin, FanModeUnknown, FanModeAutoDisconnected, FanModeAutoDisconnected, FanModeAutoDisconnected},
	}
}

func (d *fakeDevice) packetSize() int { return 64 }

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDevice) exchange(p []byte) ([]byte, error) {
	if len(p) != 64 {
		return nil, errors.New("short packet")
	}
	d.sent = append(d.sent, p)

	c := cmd(p[0])
	if c == d.failOn {
		return nil, errors.New("read error: timeout")
	}

	resp := make([]byte, 64)
	switch c {
	case CMDConnectedSensors:
		for i, t := range d.temps {
			if t != 0 {
				resp[1+i] = 0x01
			}
		}
	case CMDGetTemp:
		binary.BigEndian.PutUint16(resp[1:3], d.temps[p[1]])
	case CMDGetFanRPM:
		binary.BigEndian.PutUint16(resp[1:3], d.rpms[p[1]])
	case CMDGetFanMode:
		resp[2] = p[2]
		resp[3] = byte(d.modes[p[2]])
	case CMDSetFanMode:
		d.modes[p[2]] = FanMode(p[3])
		if FanMode(p[3]) == FanModeUnknown {
			d.duty[p[2]] = 0
		}
	case CMDSetFanFixedDutyCycle:
		d.duty[p[1]] = p[2]
	}
	return resp, nil
}

func (d *fakeDevice) commands() []cmd {
	cmds := make([]cmd, 0, len(d.sent))
	for _, p := range d.sent {
		cmds = append(cmds, cmd(p[0]))
	}
	return cmds
}

func TestReadTemperature(t *testing.T) {
	d := newFakeDevice()
	cp := &CommanderPro{link: d, config: Config{Sensor: TempSensor3, Channels: []FanCh{FanCh1}}}

	temp, err := cp.ReadTemperature(context.Background())
	require.NoError(t, err)
	require.Equal(t, 40, temp)
	require.Equal(t, byte(TempSensor3), d.sent[0][1])

	d.failOn = CMDGetTemp
	_, err = cp.ReadTemperature(context.Background())
	require.ErrorContains(t, err, "timeout")
}

func TestSetFanSpeed(t *testing.T) {
	d := newFakeDevice()
	cp := &CommanderPro{link: d, config: Config{Sensor: TempSensor1, Channels: []FanCh{FanCh1, FanCh3}}}

	require.NoError(t, cp.SetFanSpeed(context.Background(), 45))
	require.Equal(t, uint8(45), d.duty[FanCh1])
	require.Equal(t, uint8(45), d.duty[FanCh3])
	require.Equal(t, FanModeAutoDisconnected, d.modes[FanCh3], "cleared channel is re-enabled")
	require.Equal(t, []cmd{
		CMDGetFanMode, CMDSetFanFixedDutyCycle,
		CMDGetFanMode, CMDSetFanMode, CMDSetFanFixedDutyCycle,
	}, d.commands())

	d.sent = nil
	require.NoError(t, cp.SetFanSpeed(context.Background(), 0))
	require.Equal(t, []cmd{CMDSetFanMode, CMDSetFanMode}, d.commands())
	require.Equal(t, FanModeUnknown, d.modes[FanCh1])
	require.Zero(t, d.duty[FanCh1])

	require.Error(t, cp.SetFanSpeed(context.Background(), 120))

	d.failOn = CMDSetFanFixedDutyCycle
	require.ErrorContains(t, cp.SetFanSpeed(context.Background(), 30), "channel '0'")
}

func TestStatusSummary(t *testing.T) {
	d := newFakeDevice()
	cp := &CommanderPro{link: d, config: Config{Channels: []FanCh{FanCh1, FanCh2}}}

	info, err := cp.StatusSummary(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Temp 1 | 34.50 degrees C\n"+
		"Temp 3 | 40.12 degrees C\n"+
		"Fan 1  | 1200 RPM\n"+
		"Fan 2  | 1180 RPM", info)

	d.failOn = CMDGetFanRPM
	_, err = cp.StatusSummary(context.Background())
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().validate())
	require.Error(t, Config{Sensor: 4, Channels: []FanCh{FanCh1}}.validate())
	require.Error(t, Config{Sensor: TempSensor1}.validate())
	require.Error(t, Config{Sensor: TempSensor1, Channels: []FanCh{6}}.validate())
}

func TestClose(t *testing.T) {
	d := newFakeDevice()
	cp := &CommanderPro{link: d, config: DefaultConfig()}

	require.NoError(t, cp.Close())
	require.True(t, d.closed)
	require.Equal(t, "commanderpro", cp.Name())
}
