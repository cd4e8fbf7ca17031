package motor

// LinearCalibration maps a number of motor steps to a real-world unit.
// StepsPerUnit tells how many steps correspond to one user unit, Offset by
// how much the device is away from the user zero point.
type LinearCalibration struct {
	StepsPerUnit float64
	Offset       float64
}

// ToUser implements Calibration.
func (c LinearCalibration) ToUser(steps float64) float64 {
	return steps/c.StepsPerUnit - c.Offset
}

// ToSteps implements Calibration.
func (c LinearCalibration) ToSteps(value float64) float64 {
	return (value + c.Offset) * c.StepsPerUnit
}
