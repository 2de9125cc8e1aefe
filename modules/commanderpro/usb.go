package commanderpro

import (
	"fmt"
	"sync"

	"github.com/google/gousb"
)

// list all devices:
//  go get -v github.com/google/gousb/lsusb
// lsusb
// Bus 001 Device 003: ID 1b1c:0c10 Corsair Commander PRO

const (
	// Commander Pro vendor ID
	vid = gousb.ID(0x1b1c)

	// Commander Pro product ID
	pid = gousb.ID(0x0c10)
)

// link exchanges command packets with the device.
type link interface {
	// exchange writes a command packet and returns the response packet.
	exchange(cmd []byte) ([]byte, error)

	// packetSize is the size of command packets.
	packetSize() int

	Close() error
}

type usbLink struct {
	mutex sync.Mutex

	ctx      *gousb.Context
	dev      *gousb.Device
	intfDone func()

	inEndpoint  *gousb.InEndpoint
	outEndpoint *gousb.OutEndpoint
}

func openUSB() (l *usbLink, err error) {
	l = &usbLink{}

	// Initialize a new Context.
	l.ctx = gousb.NewContext()

	// Open any device with a given VID/PID using a convenience function.
	l.dev, err = l.ctx.OpenDeviceWithVIDPID(vid, pid)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("could not open a device: %v", err)
	}
	if l.dev == nil {
		_ = l.Close()
		return nil, fmt.Errorf("no Commander Pro found (%s:%s)", vid, pid)
	}

	if err = l.dev.SetAutoDetach(true); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("unable to set autodetach on device: %v", err)
	}

	// Claim the default interface using a convenience function.
	// The default interface is always #0 alt #0 in the currently active
	// config.
	intf, done, err := l.dev.DefaultInterface()
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("%s.DefaultInterface(): %v", l.dev, err)
	}
	l.intfDone = done

	// Open an IN endpoint.
	l.inEndpoint, err = intf.InEndpoint(1)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("%s.InEndpoint(1): %v", intf, err)
	}

	// And in the same interface open endpoint #2 for writing.
	l.outEndpoint, err = intf.OutEndpoint(2)
	if err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("%s.OutEndpoint(2): %v", intf, err)
	}

	return l, nil
}

func (l *usbLink) packetSize() int {
	return l.outEndpoint.Desc.MaxPacketSize
}

func (l *usbLink) exchange(cmd []byte) (response []byte, err error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	// Write data to the USB device.
	numBytes, err := l.outEndpoint.Write(cmd)
	if numBytes != len(cmd) {
		return nil, fmt.Errorf("%s.Write(): only %d bytes written, returned error is %v", l.outEndpoint, numBytes, err)
	}

	// readBytes might be smaller than the buffer size. readBytes might be greater than zero even if err is not nil.
	buf := make([]byte, l.inEndpoint.Desc.MaxPacketSize)
	readBytes, err := l.inEndpoint.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read error: %v", err)
	}
	if readBytes == 0 {
		return nil, fmt.Errorf("endpoint returned 0 bytes of data")
	}

	return buf, nil
}

// Close releases the interface, the device and the context, in this order.
func (l *usbLink) Close() error {
	if l.intfDone != nil {
		l.intfDone()
		l.intfDone = nil
	}

	var err error
	if l.dev != nil {
		err = l.dev.Close()
		l.dev = nil
	}
	if l.ctx != nil {
		if cErr := l.ctx.Close(); err == nil {
			err = cErr
		}
		l.ctx = nil
	}
	return err
}
