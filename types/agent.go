package types

import (
	"github.com/ronaldiscool/ReAgent/envs"
)

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment envs.Environment
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      Policy
	environment envs.Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, 0, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run the agent for the specified number of episodes and horizon
func (a *Agent) Run() error {
	for i := 0; i < a.config.Episodes; i++ {
		trace, err := a.RunEpisode(i)
		if err != nil {
			return err
		}
		a.traces = append(a.traces, trace)
	}
	return nil
}

func (a *Agent) Traces() []*Trace {
	return a.traces
}

// RunEpisode runs a single episode and returns the resulting trace.
// The episode ends at the horizon, at a terminal state, or when the
// policy declines to pick an action.
func (a *Agent) RunEpisode(episode int) (*Trace, error) {
	obs, err := a.environment.Reset()
	if err != nil {
		return nil, err
	}
	trace := NewTrace()
	space := a.environment.ActionSpace()

	for i := 0; i < a.config.Horizon; i++ {
		action, ok := a.policy.NextAction(i, obs, space)
		if !ok {
			break
		}
		result, err := a.environment.Step(action)
		if err != nil {
			return nil, err
		}
		a.policy.Update(i, obs, action, result)

		actionVec, err := envs.ActionVector(space, action)
		if err != nil {
			return nil, err
		}
		trace.Append(obs, actionVec, result.Reward, result.Terminal)

		obs = result.Observation
		if result.Terminal {
			break
		}
	}
	a.policy.UpdateEpisode(episode, trace)

	return trace, nil
}
