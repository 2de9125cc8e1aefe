package control

import (
	"context"
	"fmt"
	"time"

	"github.com/oblq/ipmifc/internal/curve"
	"go.uber.org/zap"
)

// unsetSpeed means no speed was applied yet, or the fan state is unknown.
const unsetSpeed = -1

// State is the loop memory carried from one tick to the next.
type State struct {
	// LastSpeed is the last speed successfully applied, or -1.
	LastSpeed int

	// LastPurge is the time of the last clear-air purge,
	// or the loop start time if none happened yet.
	LastPurge time.Time
}

// Loop is the auto-control loop.
// It is single-threaded: purge, sample and write of a tick run in sequence
// on the goroutine calling Run.
type Loop struct {
	fan    Fan
	params Parameters
	log    *zap.Logger

	state State

	now  func() time.Time
	tick func(d time.Duration) (<-chan time.Time, func())
	hold func(ctx context.Context, d time.Duration) error
}

// NewLoop returns a loop driving fan with already validated parameters.
func NewLoop(fan Fan, params Parameters, log *zap.Logger) *Loop {
	return &Loop{
		fan:    fan,
		params: params,
		log:    log,
		state:  State{LastSpeed: unsetSpeed},
		now:    time.Now,
		tick:   newTicker,
		hold:   sleep,
	}
}

// State returns a copy of the loop state.
func (l *Loop) State() State {
	return l.state
}

// Run ticks immediately and then every params.Interval seconds
// until ctx is done, returning ctx.Err().
//
// Ticks missed while a tick is still running (a long purge) are dropped
// by the ticker: at most one fires late, the following ones stay aligned.
func (l *Loop) Run(ctx context.Context) error {
	start := l.now()
	l.state.LastPurge = start

	l.log.Info("auto mode start",
		zap.String("fan", l.fan.Name()),
		zap.Int("interval", l.params.Interval),
		zap.Int("threshold", l.params.Threshold),
		zap.Int("target_temperature", l.params.TargetTemperature),
		zap.Int("max_fan_speed", l.params.MaxFanSpeed),
		zap.Int("clear_air_interval", l.params.ClearAirInterval),
		zap.Int("clear_air_duration", l.params.ClearAirDuration))

	ticks, stop := l.tick(l.params.period())
	defer stop()

	l.Tick(ctx, start)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			l.Tick(ctx, l.now())
		}
	}
}

// Tick runs one control cycle at time now:
// an optional clear-air purge, a temperature sample and,
// if the computed speed differs from the last applied one, a speed write.
// Failures are logged and leave the state as it was.
func (l *Loop) Tick(ctx context.Context, now time.Time) {
	if l.purgeDue(now) {
		l.state.LastPurge = now
		if err := l.purge(ctx); err != nil && ctx.Err() != nil {
			return
		}
	}

	temp, err := l.fan.ReadTemperature(ctx)
	if err != nil {
		l.log.Error("tick skipped", zap.Error(fmt.Errorf("%w: %w", ErrSensorRead, err)))
		return
	}

	speed := curve.Speed(temp, l.params.TargetTemperature, l.params.Threshold, l.params.MaxFanSpeed)
	if speed == l.state.LastSpeed {
		l.log.Debug("fan speed unchanged", zap.Int("temperature", temp), zap.Int("speed", speed))
		return
	}

	if err := l.fan.SetFanSpeed(ctx, speed); err != nil {
		l.log.Error("speed not applied", zap.Int("temperature", temp), zap.Int("speed", speed),
			zap.Error(fmt.Errorf("%w: %w", ErrActuatorWrite, err)))
		return
	}

	l.state.LastSpeed = speed
	l.log.Info("set fan speed", zap.Int("temperature", temp), zap.Int("speed", speed))
}

func (l *Loop) purgeDue(now time.Time) bool {
	if l.params.ClearAirInterval <= 0 {
		return false
	}
	return now.Sub(l.state.LastPurge) >= l.params.clearAirPeriod()
}

// purge runs the fan at max speed for the clear air duration, then stops it.
// LastSpeed ends at 0 only if the final write succeeded.
func (l *Loop) purge(ctx context.Context) error {
	l.log.Info("clear air start",
		zap.Int("speed", l.params.MaxFanSpeed),
		zap.Int("duration", l.params.ClearAirDuration))

	l.state.LastSpeed = unsetSpeed

	if err := l.fan.SetFanSpeed(ctx, l.params.MaxFanSpeed); err != nil {
		l.log.Error("clear air max speed not applied", zap.Error(fmt.Errorf("%w: %w", ErrActuatorWrite, err)))
	}

	if err := l.hold(ctx, l.params.clearAirHold()); err != nil {
		return err
	}

	if err := l.fan.SetFanSpeed(ctx, 0); err != nil {
		l.log.Error("clear air stop not applied", zap.Error(fmt.Errorf("%w: %w", ErrActuatorWrite, err)))
		return err
	}

	l.state.LastSpeed = 0
	l.log.Info("clear air done")

	return nil
}

func newTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
