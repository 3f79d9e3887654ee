package envs

import "testing"

func resetWithCue(t *testing.T, c *CorridorEnv, cueUp bool) []float64 {
	t.Helper()
	for seed := int64(0); seed < 1000; seed++ {
		c.Seed(seed)
		obs, err := c.Reset()
		if err != nil {
			t.Fatalf("Reset failed: %v", err)
		}
		if (obs[0] == 1) == cueUp {
			return obs
		}
	}
	t.Fatalf("could not find a seed with cue up = %v", cueUp)
	return nil
}

func walkToJunction(t *testing.T, c *CorridorEnv) *StepResult {
	t.Helper()
	var res *StepResult
	var err error
	for i := 0; i < c.Length-1; i++ {
		res, err = c.Step(DiscreteAction(CorridorRight))
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}
	return res
}

func TestCorridorCueOnlyAtStart(t *testing.T) {
	c := NewCorridorEnv(4)
	obs := resetWithCue(t, c, true)
	if obs[0] != 1 {
		t.Fatalf("expected the cue in the first observation, got %v", obs)
	}

	res, err := c.Step(DiscreteAction(CorridorRight))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	// away from the start the observation is aliased
	if res.Observation[0] != 0 || res.Observation[1] != 0 {
		t.Errorf("cue leaked into a corridor observation: %v", res.Observation)
	}
	if res.Observation[2] != 1 {
		t.Errorf("expected corridor observation, got %v", res.Observation)
	}
}

func TestCorridorRewardFollowsCue(t *testing.T) {
	c := NewCorridorEnv(4)

	resetWithCue(t, c, true)
	res := walkToJunction(t, c)
	if res.Observation[3] != 1 {
		t.Fatalf("expected junction observation, got %v", res.Observation)
	}
	res, err := c.Step(DiscreteAction(CorridorUp))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !res.Terminal {
		t.Errorf("expected terminal after turning at the junction")
	}
	if res.Reward != c.GoalReward {
		t.Errorf("expected goal reward %v, got %v", c.GoalReward, res.Reward)
	}

	resetWithCue(t, c, true)
	walkToJunction(t, c)
	res, err = c.Step(DiscreteAction(CorridorDown))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if !res.Terminal {
		t.Errorf("expected terminal after turning at the junction")
	}
	if res.Reward != c.StepPenalty {
		t.Errorf("expected step penalty %v for the wrong turn, got %v", c.StepPenalty, res.Reward)
	}
}

func TestCorridorBounds(t *testing.T) {
	c := NewCorridorEnv(3)
	c.Seed(1)
	if _, err := c.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// left at the start is a no-op
	res, err := c.Step(DiscreteAction(CorridorLeft))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if res.Info["position"] != 0 {
		t.Errorf("expected to stay at 0, got %v", res.Info["position"])
	}

	// right at the junction is a no-op
	walkToJunction(t, c)
	res, err = c.Step(DiscreteAction(CorridorRight))
	if err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if res.Info["position"] != c.Length-1 {
		t.Errorf("expected to stay at the junction, got %v", res.Info["position"])
	}
}

func TestCorridorSpaces(t *testing.T) {
	c := NewCorridorEnv(4)
	if c.ObservationSpace().Dim() != 4 {
		t.Errorf("expected observation dimension 4")
	}
	space, ok := c.ActionSpace().(*Discrete)
	if !ok || space.N != 4 {
		t.Errorf("expected a discrete action space of 4")
	}
	if _, err := c.Step(ContinuousAction{0.5}); err == nil {
		t.Errorf("expected an error for a continuous action")
	}
}
