// Package stateembed wraps an environment so that every observation is
// augmented with a fixed size embedding of the recent history of
// observations and actions. The embedding is the last hidden state of
// a recurrent world model run over a sliding window of past steps, and
// gives policies a memory in partially observable environments.
package stateembed

import (
	"fmt"
	"math"

	"github.com/ronaldiscool/ReAgent/envs"
	"github.com/ronaldiscool/ReAgent/worldmodel"
)

// StateEmbedEnv augments the observations of an inner environment with
// a history embedding. Rewards, terminal flags and info are passed
// through untouched; only the observation and the observation space
// change.
type StateEmbedEnv struct {
	inner envs.Environment
	model worldmodel.MemoryNetwork

	maxSeqLen int
	embedSize int
	rawDim    int
	actionDim int
	discrete  bool

	history *History
	curRaw  []float64

	obsSpace *envs.Box
}

var _ envs.Environment = &StateEmbedEnv{}

type config struct {
	stateMin   float64
	stateMax   float64
	haveBounds bool
}

type Option func(*config)

// WithStateBounds sets explicit scalar bounds for every dimension of
// the augmented observation space. Without this option the bounds are
// the global extremes of the inner observation space, which says
// nothing about the range the embedding dimensions actually take.
func WithStateBounds(min, max float64) Option {
	return func(c *config) {
		c.stateMin = min
		c.stateMax = max
		c.haveBounds = true
	}
}

// New wraps inner so that observations carry an embedding of the last
// maxSeqLen steps, produced by model. The action space must be either
// discrete or a box; anything else is a configuration error.
func New(inner envs.Environment, model worldmodel.MemoryNetwork, maxSeqLen int, opts ...Option) (*StateEmbedEnv, error) {
	if maxSeqLen < 1 {
		return nil, fmt.Errorf("stateembed: maxSeqLen must be positive, got %d", maxSeqLen)
	}

	var discrete bool
	var actionDim int
	switch space := inner.ActionSpace().(type) {
	case *envs.Discrete:
		discrete = true
		actionDim = space.N
	case *envs.Box:
		discrete = false
		actionDim = space.Dim()
	default:
		return nil, fmt.Errorf("stateembed: unsupported action space %T", space)
	}

	rawSpace := inner.ObservationSpace()
	rawDim := rawSpace.Dim()
	embedSize := model.NumHiddens()

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.haveBounds {
		cfg.stateMin = math.Inf(1)
		cfg.stateMax = math.Inf(-1)
		for i := 0; i < rawDim; i++ {
			cfg.stateMin = math.Min(cfg.stateMin, rawSpace.Low[i])
			cfg.stateMax = math.Max(cfg.stateMax, rawSpace.High[i])
		}
	}

	return &StateEmbedEnv{
		inner:     inner,
		model:     model,
		maxSeqLen: maxSeqLen,
		embedSize: embedSize,
		rawDim:    rawDim,
		actionDim: actionDim,
		discrete:  discrete,
		history:   NewHistory(maxSeqLen),
		obsSpace:  envs.UniformBox(embedSize+rawDim, cfg.stateMin, cfg.stateMax),
	}, nil
}

// StateDim of the augmented observations
func (e *StateEmbedEnv) StateDim() int {
	return e.embedSize + e.rawDim
}

func (e *StateEmbedEnv) ObservationSpace() *envs.Box {
	return e.obsSpace
}

// ActionSpace is the inner environment's, unmodified
func (e *StateEmbedEnv) ActionSpace() envs.Space {
	return e.inner.ActionSpace()
}

func (e *StateEmbedEnv) Seed(seed int64) {
	e.inner.Seed(seed)
}

// Unwrapped exposes the inner environment for callers that need
// capabilities beyond the environment contract
func (e *StateEmbedEnv) Unwrapped() envs.Environment {
	return e.inner
}

func (e *StateEmbedEnv) Reset() ([]float64, error) {
	raw, err := e.inner.Reset()
	if err != nil {
		return nil, err
	}
	e.history.Reset()
	e.curRaw = raw
	return e.embedState(raw)
}

func (e *StateEmbedEnv) Step(action envs.Action) (*envs.StepResult, error) {
	converted, err := e.convertAction(action)
	if err != nil {
		return nil, err
	}
	// the pair recorded is the state the action was taken from, not
	// the state it leads to
	e.history.Append(e.curRaw, converted)

	res, err := e.inner.Step(action)
	if err != nil {
		return nil, err
	}
	e.curRaw = res.Observation

	embedded, err := e.embedState(res.Observation)
	if err != nil {
		return nil, err
	}
	return &envs.StepResult{
		Observation: embedded,
		Reward:      res.Reward,
		Terminal:    res.Terminal,
		Info:        res.Info,
	}, nil
}

// embedState runs the world model over the current history window and
// prefixes its last hidden state to the raw observation. The model is
// driven in evaluation mode and its previous mode flag is restored on
// every exit path. The history itself is never touched here.
func (e *StateEmbedEnv) embedState(raw []float64) ([]float64, error) {
	states, actions := e.history.Snapshot()
	if len(states) == 0 {
		// first embedding after a reset: a single all-zero step
		states = [][]float64{make([]float64, e.rawDim)}
		actions = [][]float64{make([]float64, e.actionDim)}
	}

	prevMode := e.model.Training()
	e.model.SetTraining(false)
	defer e.model.SetTraining(prevMode)

	out, err := e.model.Forward(states, actions)
	if err != nil {
		return nil, err
	}
	hidden := out.LastHidden()
	if len(hidden) != e.embedSize {
		return nil, fmt.Errorf("stateembed: model returned hidden state of dimension %d, want %d", len(hidden), e.embedSize)
	}

	embedded := make([]float64, 0, e.embedSize+e.rawDim)
	embedded = append(embedded, hidden...)
	embedded = append(embedded, raw...)
	return embedded, nil
}

// convertAction to the numeric representation stored in the history:
// one-hot for discrete spaces, a copy of the vector for boxes
func (e *StateEmbedEnv) convertAction(action envs.Action) ([]float64, error) {
	if e.discrete {
		da, ok := action.(envs.DiscreteAction)
		if !ok {
			return nil, fmt.Errorf("stateembed: expected a discrete action, got %T", action)
		}
		if int(da) < 0 || int(da) >= e.actionDim {
			return nil, fmt.Errorf("stateembed: action index %d out of range [0, %d)", da, e.actionDim)
		}
		oneHot := make([]float64, e.actionDim)
		oneHot[int(da)] = 1.0
		return oneHot, nil
	}

	ca, ok := action.(envs.ContinuousAction)
	if !ok {
		return nil, fmt.Errorf("stateembed: expected a continuous action, got %T", action)
	}
	if len(ca) != e.actionDim {
		return nil, fmt.Errorf("stateembed: action of dimension %d, want %d", len(ca), e.actionDim)
	}
	converted := make([]float64, e.actionDim)
	copy(converted, ca)
	return converted, nil
}
