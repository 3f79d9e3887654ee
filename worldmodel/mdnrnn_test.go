package worldmodel

import (
	"math"
	"testing"
)

func testSequence(seqLen, stateDim, actionDim int) ([][]float64, [][]float64) {
	states := make([][]float64, seqLen)
	actions := make([][]float64, seqLen)
	for t := 0; t < seqLen; t++ {
		states[t] = make([]float64, stateDim)
		actions[t] = make([]float64, actionDim)
		for i := range states[t] {
			states[t][i] = float64(t) * 0.1
		}
		for i := range actions[t] {
			actions[t][i] = float64(t) * 0.2
		}
	}
	return states, actions
}

func TestMDNRNNOutputShapes(t *testing.T) {
	m := NewMDNRNN(3, 2, 8, 4, 1)
	if m.NumHiddens() != 8 {
		t.Fatalf("expected 8 hiddens, got %d", m.NumHiddens())
	}

	states, actions := testSequence(5, 3, 2)
	out, err := m.Forward(states, actions)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	if len(out.AllStepsHidden) != 5 {
		t.Fatalf("expected 5 hidden states, got %d", len(out.AllStepsHidden))
	}
	for t2, h := range out.AllStepsHidden {
		if len(h) != 8 {
			t.Errorf("hidden state %d has dimension %d, want 8", t2, len(h))
		}
	}
	if len(out.Mus) != 5 || len(out.Mus[0]) != 4 || len(out.Mus[0][0]) != 3 {
		t.Errorf("unexpected mu shape")
	}
	if len(out.Sigmas[0]) != 4 || len(out.Sigmas[0][0]) != 3 {
		t.Errorf("unexpected sigma shape")
	}
	if len(out.LogPi[0]) != 4 {
		t.Errorf("unexpected logpi shape")
	}
	if len(out.Reward) != 5 || len(out.NotTerminal) != 5 {
		t.Errorf("unexpected reward or terminal shape")
	}

	last := out.LastHidden()
	for i, v := range out.AllStepsHidden[4] {
		if last[i] != v {
			t.Fatalf("LastHidden differs from the final hidden state")
		}
	}
}

func TestMDNRNNDeterministic(t *testing.T) {
	states, actions := testSequence(4, 2, 2)

	m1 := NewMDNRNN(2, 2, 6, 3, 99)
	m2 := NewMDNRNN(2, 2, 6, 3, 99)
	out1, err := m1.Forward(states, actions)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	out2, err := m2.Forward(states, actions)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	for t2 := range out1.AllStepsHidden {
		for i := range out1.AllStepsHidden[t2] {
			if out1.AllStepsHidden[t2][i] != out2.AllStepsHidden[t2][i] {
				t.Fatalf("same seed produced different hidden states")
			}
		}
	}
}

func TestMDNRNNMixtureIsNormalized(t *testing.T) {
	m := NewMDNRNN(2, 2, 6, 3, 5)
	states, actions := testSequence(3, 2, 2)
	out, err := m.Forward(states, actions)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	for t2, logPi := range out.LogPi {
		sum := 0.0
		for _, lp := range logPi {
			sum += math.Exp(lp)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("step %d: mixture weights sum to %v", t2, sum)
		}
	}
	for _, sigmas := range out.Sigmas {
		for _, row := range sigmas {
			for _, s := range row {
				if s <= 0 {
					t.Errorf("non-positive sigma %v", s)
				}
			}
		}
	}
	for _, nt := range out.NotTerminal {
		if nt < 0 || nt > 1 {
			t.Errorf("continuation probability %v out of [0, 1]", nt)
		}
	}
}

func TestMDNRNNValidation(t *testing.T) {
	m := NewMDNRNN(2, 2, 4, 2, 1)

	if _, err := m.Forward(nil, nil); err == nil {
		t.Errorf("expected an error for an empty sequence")
	}
	if _, err := m.Forward([][]float64{{1, 2}}, nil); err == nil {
		t.Errorf("expected an error for unbalanced sequences")
	}
	if _, err := m.Forward([][]float64{{1}}, [][]float64{{1, 2}}); err == nil {
		t.Errorf("expected an error for a state of the wrong dimension")
	}
	if _, err := m.Forward([][]float64{{1, 2}}, [][]float64{{1}}); err == nil {
		t.Errorf("expected an error for an action of the wrong dimension")
	}
}

func TestMDNRNNModeFlag(t *testing.T) {
	m := NewMDNRNN(2, 2, 4, 2, 1)
	if m.Training() {
		t.Errorf("expected evaluation mode by default")
	}
	m.SetTraining(true)
	if !m.Training() {
		t.Errorf("expected training mode after SetTraining(true)")
	}
	m.SetTraining(false)
	if m.Training() {
		t.Errorf("expected evaluation mode after SetTraining(false)")
	}
}
