// Package focus moves a motor to the position that maximizes a feedback
// measure, such as the sharpness gradient of a camera image.
package focus

import (
	"context"
	"errors"
	"fmt"

	"github.com/beamkit/beamctl/internal/ctxlog"
	"github.com/beamkit/beamctl/internal/device"
	"github.com/beamkit/beamctl/internal/device/motor"
)

// Measure yields the feedback value the focuser maximizes.
type Measure interface {
	Evaluate() (float64, error)
}

// Focuser hill-climbs a motor against a measure: it keeps moving while the
// measure improves, and reverses direction with half the step when it
// declines or a limit blocks the way. It stops once the step falls below
// epsilon.
type Focuser struct {
	motor   *motor.Motor
	epsilon float64
	measure Measure
}

// New creates a focuser. epsilon is the user-unit step below which the
// search is considered converged.
func New(m *motor.Motor, epsilon float64, measure Measure) *Focuser {
	return &Focuser{motor: m, epsilon: epsilon, measure: measure}
}

// Focus runs the search starting with the given step in user units.
func (f *Focuser) Focus(ctx context.Context, step float64) error {
	if step <= 0 {
		return fmt.Errorf("focus step must be positive, got %g", step)
	}
	logger := ctxlog.FromContext(ctx).With("motor", f.motor.Name())

	direction := 1.0
	last, err := f.measure.Evaluate()
	if err != nil {
		return err
	}

	for step > f.epsilon {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := f.motor.Move(direction * step)
		switch {
		case errors.Is(err, device.ErrSoftLimit):
			// Target rejected, position unchanged. Turn around.
			direction = -direction
			step /= 2
			continue
		case errors.Is(err, device.ErrHardLimit):
			// The motor stopped at the limit. Take the value there and
			// turn around.
			value, evalErr := f.measure.Evaluate()
			if evalErr != nil {
				return evalErr
			}
			last = value
			direction = -direction
			step /= 2
			continue
		case err != nil:
			return err
		}

		value, err := f.measure.Evaluate()
		if err != nil {
			return err
		}
		if value < last {
			direction = -direction
			step /= 2
		}
		last = value
	}

	position, err := f.motor.Position()
	if err != nil {
		return err
	}
	logger.Debug("Focus converged.", "position", position, "value", last)
	return nil
}
