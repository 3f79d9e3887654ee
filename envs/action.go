package envs

import "fmt"

// ActionVector is the numeric representation of an action under a
// space: a one-hot vector of length N for a discrete space, a copy of
// the vector for a box.
func ActionVector(space Space, action Action) ([]float64, error) {
	switch s := space.(type) {
	case *Discrete:
		da, ok := action.(DiscreteAction)
		if !ok {
			return nil, fmt.Errorf("envs: expected a discrete action, got %T", action)
		}
		if int(da) < 0 || int(da) >= s.N {
			return nil, fmt.Errorf("envs: action index %d out of range [0, %d)", da, s.N)
		}
		oneHot := make([]float64, s.N)
		oneHot[int(da)] = 1.0
		return oneHot, nil
	case *Box:
		ca, ok := action.(ContinuousAction)
		if !ok {
			return nil, fmt.Errorf("envs: expected a continuous action, got %T", action)
		}
		if len(ca) != s.Dim() {
			return nil, fmt.Errorf("envs: action of dimension %d, want %d", len(ca), s.Dim())
		}
		out := make([]float64, len(ca))
		copy(out, ca)
		return out, nil
	default:
		return nil, fmt.Errorf("envs: unsupported action space %T", space)
	}
}
