// Package replay collects episode trajectories for offline world model
// training. Trajectories are JSON records of raw observations, numeric
// actions and rewards, buffered either in memory or through Redis.
package replay

import (
	"context"
	"sync"
	"time"

	"github.com/ronaldiscool/ReAgent/envs"
)

// Step is one recorded transition
type Step struct {
	Obs      []float64 `json:"obs"`
	Action   []float64 `json:"action"`
	Reward   float64   `json:"reward"`
	Terminal bool      `json:"terminal"`
}

// Trajectory of a single episode
type Trajectory struct {
	Steps         []Step  `json:"steps"`
	EpisodeReward float64 `json:"episode_reward"`
	CreatedAtMs   int64   `json:"created_at_ms"`
}

// Buffer of trajectories
type Buffer interface {
	// Push a finished trajectory
	Push(context.Context, *Trajectory) error
	// Pop the oldest trajectory, nil when the buffer is empty
	Pop(context.Context) (*Trajectory, error)
	// Len of the buffer
	Len(context.Context) (int, error)
}

// MemoryBuffer keeps trajectories in memory
type MemoryBuffer struct {
	lock         sync.Mutex
	trajectories []*Trajectory
}

var _ Buffer = &MemoryBuffer{}

func NewMemoryBuffer() *MemoryBuffer {
	return &MemoryBuffer{
		trajectories: make([]*Trajectory, 0),
	}
}

func (m *MemoryBuffer) Push(_ context.Context, t *Trajectory) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.trajectories = append(m.trajectories, t)
	return nil
}

func (m *MemoryBuffer) Pop(_ context.Context) (*Trajectory, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if len(m.trajectories) == 0 {
		return nil, nil
	}
	t := m.trajectories[0]
	m.trajectories = m.trajectories[1:]
	return t, nil
}

func (m *MemoryBuffer) Len(_ context.Context) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.trajectories), nil
}

// Collector wraps an environment and records every transition into a
// buffer. A trajectory is pushed when the episode reaches a terminal
// state, or on the next Reset for episodes cut off at the horizon.
type Collector struct {
	inner  envs.Environment
	buffer Buffer
	ctx    context.Context

	current *Trajectory
	curObs  []float64
}

var _ envs.Environment = &Collector{}

func NewCollector(ctx context.Context, inner envs.Environment, buffer Buffer) *Collector {
	return &Collector{
		inner:  inner,
		buffer: buffer,
		ctx:    ctx,
	}
}

func (c *Collector) ObservationSpace() *envs.Box {
	return c.inner.ObservationSpace()
}

func (c *Collector) ActionSpace() envs.Space {
	return c.inner.ActionSpace()
}

func (c *Collector) Seed(seed int64) {
	c.inner.Seed(seed)
}

func (c *Collector) Reset() ([]float64, error) {
	if err := c.flush(); err != nil {
		return nil, err
	}
	obs, err := c.inner.Reset()
	if err != nil {
		return nil, err
	}
	c.current = &Trajectory{Steps: make([]Step, 0)}
	c.curObs = obs
	return obs, nil
}

func (c *Collector) Step(action envs.Action) (*envs.StepResult, error) {
	result, err := c.inner.Step(action)
	if err != nil {
		return nil, err
	}
	actionVec, err := envs.ActionVector(c.inner.ActionSpace(), action)
	if err != nil {
		return nil, err
	}

	if c.current != nil {
		c.current.Steps = append(c.current.Steps, Step{
			Obs:      c.curObs,
			Action:   actionVec,
			Reward:   result.Reward,
			Terminal: result.Terminal,
		})
		c.current.EpisodeReward += result.Reward
	}
	c.curObs = result.Observation

	if result.Terminal {
		if err := c.flush(); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *Collector) flush() error {
	if c.current == nil || len(c.current.Steps) == 0 {
		c.current = nil
		return nil
	}
	c.current.CreatedAtMs = time.Now().UnixMilli()
	err := c.buffer.Push(c.ctx, c.current)
	c.current = nil
	return err
}
