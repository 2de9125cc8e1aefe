package ipmi

import (
	"context"
	"errors"
	"fmt"
)

// fanThreshold are the BMC alarm thresholds of a fan sensor, in RPM.
// Slow fans may fall below the stock lower thresholds, making the BMC
// spin every fan to full speed.
type fanThreshold struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Lower       []string `yaml:"lower"`
	Upper       []string `yaml:"upper"`
}

func (t *fanThreshold) set(ctx context.Context, command func(context.Context, string) (string, error), ipmiCMD string) error {
	if len(t.Lower) < 3 {
		return errors.New("lower thresholds must have three values: Non-Recoverable, Critical and Non-Critical")
	}

	if len(t.Upper) < 3 {
		return errors.New("upper thresholds must have three values: Non-Critical, Critical and Non-Recoverable")
	}

	cmdLower := fmt.Sprintf("%s sensor thresh %s lower %s %s %s",
		ipmiCMD, t.Name, t.Lower[0], t.Lower[1], t.Lower[2])
	if _, err := command(ctx, cmdLower); err != nil {
		return err
	}

	cmdUpper := fmt.Sprintf("%s sensor thresh %s upper %s %s %s",
		ipmiCMD, t.Name, t.Upper[0], t.Upper[1], t.Upper[2])
	if _, err := command(ctx, cmdUpper); err != nil {
		return err
	}

	return nil
}
