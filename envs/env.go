package envs

import "fmt"

// Environment with numeric vector observations
// Reset starts a new episode, Step advances it by one transition
type Environment interface {
	// Reset called at the start of each episode, returns the first observation
	Reset() ([]float64, error)
	// Step with the specified action
	Step(Action) (*StepResult, error)
	// Seed the randomness of the environment
	Seed(int64)
	// ObservationSpace bounds of the observation vectors
	ObservationSpace() *Box
	// ActionSpace of the environment, fixed for its lifetime
	ActionSpace() Space
}

// StepResult of a single transition
type StepResult struct {
	Observation []float64
	Reward      float64
	Terminal    bool
	Info        map[string]interface{}
}

// Action taken by a policy, either a discrete index or a continuous vector
type Action interface {
	actionTag()
}

// DiscreteAction indexes into a Discrete space
type DiscreteAction int

func (DiscreteAction) actionTag() {}

// ContinuousAction is a point in a Box space
type ContinuousAction []float64

func (ContinuousAction) actionTag() {}

// Space of actions or observations
// The two concrete kinds are Discrete and Box, decided at construction
type Space interface {
	// Dim of the numeric representation of an element
	// cardinality for Discrete, vector length for Box
	Dim() int
	// Contains reports whether the action belongs to the space
	Contains(Action) bool
}

// Discrete space of N actions indexed 0..N-1
type Discrete struct {
	N int
}

var _ Space = &Discrete{}

func NewDiscrete(n int) *Discrete {
	return &Discrete{N: n}
}

func (d *Discrete) Dim() int {
	return d.N
}

func (d *Discrete) Contains(a Action) bool {
	da, ok := a.(DiscreteAction)
	return ok && int(da) >= 0 && int(da) < d.N
}

// Box space bounded elementwise by Low and High
type Box struct {
	Low  []float64
	High []float64
}

var _ Space = &Box{}

// NewBox with elementwise bounds, panics if the bounds differ in length
func NewBox(low, high []float64) *Box {
	if len(low) != len(high) {
		panic(fmt.Sprintf("box bounds of different lengths: %d != %d", len(low), len(high)))
	}
	return &Box{Low: low, High: high}
}

// UniformBox of the given dimension with the same scalar bounds everywhere
func UniformBox(dim int, low, high float64) *Box {
	l := make([]float64, dim)
	h := make([]float64, dim)
	for i := 0; i < dim; i++ {
		l[i] = low
		h[i] = high
	}
	return &Box{Low: l, High: h}
}

func (b *Box) Dim() int {
	return len(b.Low)
}

func (b *Box) Contains(a Action) bool {
	ca, ok := a.(ContinuousAction)
	if !ok || len(ca) != len(b.Low) {
		return false
	}
	for i, v := range ca {
		if v < b.Low[i] || v > b.High[i] {
			return false
		}
	}
	return true
}
