package focus

import "github.com/beamkit/beamctl/internal/device"

// DummyGradientMeasure is a feedback measure peaked at MaxPosition, reading
// the position through a device parameter. It stands in for a real
// image-gradient measure in tests and dry runs.
type DummyGradientMeasure struct {
	Param       *device.Parameter
	MaxPosition float64
}

// NewDummyGradientMeasure creates a measure peaked at maxPosition.
func NewDummyGradientMeasure(param *device.Parameter, maxPosition float64) *DummyGradientMeasure {
	return &DummyGradientMeasure{Param: param, MaxPosition: maxPosition}
}

// Evaluate implements Measure. The value decreases strictly with the
// distance from MaxPosition, so the maximum is unique.
func (m *DummyGradientMeasure) Evaluate() (float64, error) {
	position, err := m.Param.Get()
	if err != nil {
		return 0, err
	}
	d := position - m.MaxPosition
	return 1 / (1 + d*d), nil
}
