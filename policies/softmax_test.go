package policies

import (
	"testing"

	"github.com/ronaldiscool/ReAgent/envs"
)

func TestSoftMaxQNextAction(t *testing.T) {
	p := NewSoftMaxQPolicy(0.1, 0.99, 0.5)
	space := envs.NewDiscrete(3)
	obs := []float64{0.5, -0.5}

	for i := 0; i < 20; i++ {
		action, ok := p.NextAction(0, obs, space)
		if !ok {
			t.Fatalf("expected an action")
		}
		if !space.Contains(action) {
			t.Fatalf("sampled action %v outside the space", action)
		}
	}

	if _, ok := p.NextAction(0, obs, envs.UniformBox(1, -1, 1)); ok {
		t.Errorf("expected no action for a continuous space")
	}
}

func TestSoftMaxQUpdate(t *testing.T) {
	p := NewSoftMaxQPolicy(0.5, 0.9, 0.5)
	space := envs.NewDiscrete(2)
	obs := []float64{1, 0}

	// seed the table row
	if _, ok := p.NextAction(0, obs, space); !ok {
		t.Fatalf("expected an action")
	}

	p.Update(0, obs, envs.DiscreteAction(1), &envs.StepResult{
		Observation: []float64{0, 1},
		Reward:      4,
		Terminal:    true,
	})
	row := p.QTable[p.hash(obs)]
	if row[1] != 2 {
		t.Errorf("expected Q value 0.5*4=2 after one update, got %v", row[1])
	}
	if row[0] != 0 {
		t.Errorf("expected the other action untouched, got %v", row[0])
	}

	p.Reset()
	if len(p.QTable) != 0 {
		t.Errorf("expected an empty table after reset")
	}
}

func TestSoftMaxQPrefersHigherValue(t *testing.T) {
	p := NewSoftMaxQPolicy(0.5, 0.9, 0.1)
	space := envs.NewDiscrete(2)
	obs := []float64{1, 0}
	p.QTable[p.hash(obs)] = []float64{0, 5}

	hits := 0
	for i := 0; i < 100; i++ {
		action, ok := p.NextAction(0, obs, space)
		if !ok {
			t.Fatalf("expected an action")
		}
		if action == envs.DiscreteAction(1) {
			hits++
		}
	}
	if hits < 95 {
		t.Errorf("expected the high value action almost always, got %d/100", hits)
	}
}
