package types

import (
	"math/rand"
	"time"

	"github.com/ronaldiscool/ReAgent/envs"
)

// Policy decides the next action from the current observation
type Policy interface {
	// NextAction for the given step and observation
	NextAction(step int, obs []float64, space envs.Space) (envs.Action, bool)
	// Update with the outcome of a single transition
	Update(step int, obs []float64, action envs.Action, result *envs.StepResult)
	// UpdateEpisode with the full trace of a finished episode
	UpdateEpisode(episode int, trace *Trace)
	// Reset the learned state
	Reset()
}

// RandomPolicy samples actions uniformly from the action space
type RandomPolicy struct {
	rand *rand.Rand
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy() *RandomPolicy {
	return &RandomPolicy{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RandomPolicy) NextAction(step int, obs []float64, space envs.Space) (envs.Action, bool) {
	switch s := space.(type) {
	case *envs.Discrete:
		return envs.DiscreteAction(r.rand.Intn(s.N)), true
	case *envs.Box:
		action := make(envs.ContinuousAction, s.Dim())
		for i := range action {
			action[i] = s.Low[i] + r.rand.Float64()*(s.High[i]-s.Low[i])
		}
		return action, true
	}
	return nil, false
}

func (r *RandomPolicy) Update(_ int, _ []float64, _ envs.Action, _ *envs.StepResult) {}

func (r *RandomPolicy) UpdateEpisode(_ int, _ *Trace) {}

func (r *RandomPolicy) Reset() {}
