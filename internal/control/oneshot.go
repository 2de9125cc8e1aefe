package control

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Fixed clamps percent to [0, 100] and applies it once.
func Fixed(ctx context.Context, fan Fan, percent int, log *zap.Logger) error {
	speed := ClampSpeed(percent)
	log.Info(fmt.Sprintf("fixed mode, set fan speed to %d", speed), zap.String("fan", fan.Name()))

	if err := fan.SetFanSpeed(ctx, speed); err != nil {
		return fmt.Errorf("%w: %w", ErrActuatorWrite, err)
	}
	return nil
}

// Info returns the fan status summary.
func Info(ctx context.Context, fan Fan) (string, error) {
	info, err := fan.StatusSummary(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStatusRead, err)
	}
	return info, nil
}
