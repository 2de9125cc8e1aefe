package commanderpro

import (
	"encoding/binary"
)

type TempSensor byte

const (
	CMDConnectedSensors cmd = 0x10 // CMDReadTemperatureMask
	CMDGetTemp          cmd = 0x11 // CMDReadTemperatureValue

	TempSensor1 TempSensor = 0x00
	TempSensor2 TempSensor = 0x01
	TempSensor3 TempSensor = 0x02
	TempSensor4 TempSensor = 0x03
)

// connectedSensors reports which of the four probes are plugged in.
func (cp *CommanderPro) connectedSensors() (connected [4]bool, err error) {
	resp, err := cp.link.exchange(cp.packet(CMDConnectedSensors))
	if err != nil {
		return connected, err
	}
	for i := range connected {
		connected[i] = resp[1+i] == 0x01
	}
	return connected, nil
}

// getTemp returns the probe temperature in °C,
// the device reports hundredths of degree.
func (cp *CommanderPro) getTemp(sensor TempSensor) (temp float64, err error) {
	resp, err := cp.link.exchange(cp.packet(CMDGetTemp, byte(sensor)))
	if err != nil {
		return 0, err
	}
	return float64(binary.BigEndian.Uint16(resp[1:3])) / 100, nil
}
