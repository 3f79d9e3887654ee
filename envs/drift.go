package envs

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// DriftEnv is a one dimensional point mass pushed by a hidden wind that
// is drawn once per episode. The agent only observes its position, so
// the wind has to be inferred from the history of positions and the
// velocity commands that produced them.
type DriftEnv struct {
	MaxWind float64
	Bound   float64

	rand *rand.Rand
	pos  float64
	wind float64
}

var _ Environment = &DriftEnv{}

func NewDriftEnv() *DriftEnv {
	return &DriftEnv{
		MaxWind: 0.5,
		Bound:   10,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (d *DriftEnv) Seed(seed int64) {
	d.rand = rand.New(rand.NewSource(seed))
}

func (d *DriftEnv) ObservationSpace() *Box {
	return UniformBox(1, -d.Bound, d.Bound)
}

func (d *DriftEnv) ActionSpace() Space {
	return UniformBox(1, -1, 1)
}

func (d *DriftEnv) Reset() ([]float64, error) {
	d.pos = 0
	d.wind = (d.rand.Float64()*2 - 1) * d.MaxWind
	return []float64{d.pos}, nil
}

func (d *DriftEnv) Step(a Action) (*StepResult, error) {
	ca, ok := a.(ContinuousAction)
	if !ok {
		return nil, fmt.Errorf("drift: expected a continuous action, got %T", a)
	}
	if len(ca) != 1 {
		return nil, fmt.Errorf("drift: expected a 1-dimensional action, got %d", len(ca))
	}

	vel := math.Max(-1, math.Min(1, ca[0]))
	d.pos += vel + d.wind

	terminal := math.Abs(d.pos) > d.Bound
	return &StepResult{
		Observation: []float64{d.pos},
		Reward:      -math.Abs(d.pos),
		Terminal:    terminal,
		Info:        map[string]interface{}{"wind": d.wind},
	}, nil
}
