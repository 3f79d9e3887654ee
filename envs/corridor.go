package envs

import (
	"fmt"
	"math/rand"
	"time"
)

// Corridor actions
const (
	CorridorUp = iota
	CorridorDown
	CorridorLeft
	CorridorRight
)

// CorridorEnv is a T-maze: the agent walks down an aliased corridor and
// has to turn up or down at the junction. The rewarding direction is
// signalled only in the very first observation of the episode, so a
// single-step observation at the junction is not enough to act well.
//
// Observations are one-hot over {start+cue up, start+cue down,
// corridor, junction}.
type CorridorEnv struct {
	Length      int
	GoalReward  float64
	StepPenalty float64

	rand  *rand.Rand
	pos   int
	cueUp bool
}

var _ Environment = &CorridorEnv{}

func NewCorridorEnv(length int) *CorridorEnv {
	if length < 2 {
		length = 2
	}
	return &CorridorEnv{
		Length:      length,
		GoalReward:  4.0,
		StepPenalty: -0.1,
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		pos:         0,
	}
}

func (c *CorridorEnv) Seed(seed int64) {
	c.rand = rand.New(rand.NewSource(seed))
}

func (c *CorridorEnv) ObservationSpace() *Box {
	return UniformBox(4, 0, 1)
}

func (c *CorridorEnv) ActionSpace() Space {
	return NewDiscrete(4)
}

func (c *CorridorEnv) Reset() ([]float64, error) {
	c.pos = 0
	c.cueUp = c.rand.Intn(2) == 0
	return c.observe(), nil
}

func (c *CorridorEnv) Step(a Action) (*StepResult, error) {
	da, ok := a.(DiscreteAction)
	if !ok {
		return nil, fmt.Errorf("corridor: expected a discrete action, got %T", a)
	}
	if da < 0 || int(da) > 3 {
		return nil, fmt.Errorf("corridor: action index %d out of range", da)
	}

	reward := c.StepPenalty
	terminal := false

	atJunction := c.pos == c.Length-1
	switch int(da) {
	case CorridorRight:
		if !atJunction {
			c.pos++
		}
	case CorridorLeft:
		if c.pos > 0 {
			c.pos--
		}
	case CorridorUp, CorridorDown:
		if atJunction {
			terminal = true
			if (int(da) == CorridorUp) == c.cueUp {
				reward = c.GoalReward
			}
		}
	}

	return &StepResult{
		Observation: c.observe(),
		Reward:      reward,
		Terminal:    terminal,
		Info:        map[string]interface{}{"position": c.pos},
	}, nil
}

func (c *CorridorEnv) observe() []float64 {
	obs := make([]float64, 4)
	switch {
	case c.pos == 0 && c.cueUp:
		obs[0] = 1
	case c.pos == 0:
		obs[1] = 1
	case c.pos == c.Length-1:
		obs[3] = 1
	default:
		obs[2] = 1
	}
	return obs
}
