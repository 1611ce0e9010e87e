package hardware

// AbsoluteEncoder reads the absolute position of a module's steering shaft.
type AbsoluteEncoder interface {
	// AbsolutePosition returns the shaft position as a fraction of a full
	// turn, in [0, 1).
	AbsolutePosition() float64
}

// AngleMotor is the motor controller turning a module's steering shaft.
type AngleMotor interface {
	SetVoltage(volts float64)
	SetCurrentLimit(amps int) error
}

// DriveMotor is the motor controller spinning a module's wheel.  Speed is a
// signed fraction of full output in [-1, 1].
type DriveMotor interface {
	SetSpeed(speed float64)
	SetCurrentLimit(amps int) error
	// SetIdleCoast makes the motor freewheel rather than brake when the
	// commanded speed is zero.
	SetIdleCoast() error
}
