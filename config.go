package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oblq/ipmifc/modules/commanderpro"
	"github.com/oblq/ipmifc/modules/ipmi"
)

const defaultConfigPath = "ipmifc.yaml"

// Config selects and configures the fan backend.
type Config struct {
	// Backend is the name of the fan backend: ipmi or commanderpro.
	Backend string `yaml:"backend"`

	IPMI         ipmi.IPMI           `yaml:"ipmi"`
	CommanderPro commanderpro.Config `yaml:"commanderpro"`
}

func defaultConfig() *Config {
	return &Config{
		Backend:      backendIPMI,
		IPMI:         *ipmi.New(),
		CommanderPro: commanderpro.DefaultConfig(),
	}
}

// loadConfig reads the yaml file at path over the defaults.
// A missing file is not an error unless required.
// The backend name is checked once the command line override is applied.
func loadConfig(path string, required bool) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return config, nil
		}
		return nil, err
	}

	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}
