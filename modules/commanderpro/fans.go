package commanderpro

import (
	"encoding/binary"
)

type FanCh byte
type FanMode byte

const (
	CMDGetFanRPM            cmd = 0x21 // CMDReadFanSpeed
	CMDSetFanFixedDutyCycle cmd = 0x23 // CMDWriteFanPower pwm
	CMDSetFanMode           cmd = 0x28 // CMDWriteFanDetectionType
	CMDGetFanMode           cmd = 0x29 // CMDReadFanDetectionType

	FanCh1 FanCh = 0x00
	FanCh2 FanCh = 0x01
	FanCh3 FanCh = 0x02
	FanCh4 FanCh = 0x03
	FanCh5 FanCh = 0x04
	FanCh6 FanCh = 0x05

	FanModeAutoDisconnected FanMode = 0x00
	FanMode3Pin             FanMode = 0x01
	FanMode4Pin             FanMode = 0x02
	FanModeUnknown          FanMode = 0x03
)

// setChannelDutyCycle is the "Fixed %" configuration request (0x23),
// 0% clears the channel.
func (cp *CommanderPro) setChannelDutyCycle(fan FanCh, dutyCycle uint8) error {
	// basically this clear the channel settings and turn off the fan
	if dutyCycle == 0 {
		return cp.setFanMode(fan, FanModeUnknown)
	}

	fanMode, err := cp.getFanMode(fan)
	if err != nil {
		return err
	}
	if fanMode == FanModeUnknown {
		if err := cp.setFanMode(fan, FanModeAutoDisconnected); err != nil {
			return err
		}
	}

	_, err = cp.link.exchange(cp.packet(CMDSetFanFixedDutyCycle, byte(fan), dutyCycle))
	return err
}

func (cp *CommanderPro) getChannelRPM(fan FanCh) (rpm uint16, err error) {
	resp, err := cp.link.exchange(cp.packet(CMDGetFanRPM, byte(fan)))
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(resp[1:3]), nil
}

func (cp *CommanderPro) setFanMode(fan FanCh, fanMode FanMode) error {
	_, err := cp.link.exchange(cp.packet(CMDSetFanMode, 0x02, byte(fan), byte(fanMode)))
	return err
}

func (cp *CommanderPro) getFanMode(fan FanCh) (fanMode FanMode, err error) {
	resp, err := cp.link.exchange(cp.packet(CMDGetFanMode, 0x01, byte(fan)))
	if err != nil {
		return FanModeUnknown, err
	}

	if resp[2] == byte(fan) {
		return FanMode(resp[3]), nil
	}
	return FanModeUnknown, nil
}
