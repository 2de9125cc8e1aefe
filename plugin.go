package main

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/oblq/ipmifc/internal/control"
	"github.com/oblq/ipmifc/internal/exec"
	"github.com/oblq/ipmifc/modules/commanderpro"
)

const (
	backendIPMI         = "ipmi"
	backendCommanderPro = "commanderpro"
)

// FanBackend is a control.Fan holding resources until closed.
type FanBackend interface {
	control.Fan
	io.Closer
}

// backendOpener opens a FanBackend from the configuration.
type backendOpener = func(ctx context.Context, config *Config, log *zap.Logger) (FanBackend, error)

var backends = map[string]backendOpener{
	backendIPMI:         openIPMI,
	backendCommanderPro: openCommanderPro,
}

func openIPMI(ctx context.Context, config *Config, log *zap.Logger) (FanBackend, error) {
	ipmi := &config.IPMI
	if err := ipmi.Open(ctx, exec.Local{}, log); err != nil {
		return nil, err
	}
	return ipmi, nil
}

func openCommanderPro(_ context.Context, config *Config, _ *zap.Logger) (FanBackend, error) {
	cp, err := commanderpro.Open(config.CommanderPro)
	if err != nil {
		return nil, err
	}
	return cp, nil
}
