package breakout

import "fmt"

// SimulationFault is an unexpected failure inside a frame. The run that
// produced it has already been moved to the game-over state.
type SimulationFault struct {
	Frame uint64
	Cause error
}

func (f *SimulationFault) Error() string {
	return fmt.Sprintf("breakout: simulation fault at frame %d: %v", f.Frame, f.Cause)
}

func (f *SimulationFault) Unwrap() error {
	return f.Cause
}

// faultFrom converts a recovered panic value into a fault.
func faultFrom(frame uint64, rec any) *SimulationFault {
	err, ok := rec.(error)
	if !ok {
		err = fmt.Errorf("%v", rec)
	}
	return &SimulationFault{Frame: frame, Cause: err}
}
