package stateembed

import "testing"

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		v := float64(i)
		h.Append([]float64{v}, []float64{v * 10})
	}
	if h.Len() != 3 {
		t.Fatalf("expected length 3, got %d", h.Len())
	}
	states, actions := h.Snapshot()
	for i, want := range []float64{2, 3, 4} {
		if states[i][0] != want {
			t.Errorf("state %d: expected %v, got %v", i, want, states[i][0])
		}
		if actions[i][0] != want*10 {
			t.Errorf("action %d: expected %v, got %v", i, want*10, actions[i][0])
		}
	}
}

func TestHistoryBalanced(t *testing.T) {
	h := NewHistory(2)
	for i := 0; i < 4; i++ {
		h.Append([]float64{1}, []float64{2})
		states, actions := h.Snapshot()
		if len(states) != len(actions) {
			t.Fatalf("unbalanced history: %d states, %d actions", len(states), len(actions))
		}
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(3)
	h.Append([]float64{1}, []float64{2})
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("expected empty history after reset, got length %d", h.Len())
	}
	states, actions := h.Snapshot()
	if len(states) != 0 || len(actions) != 0 {
		t.Errorf("expected empty snapshot after reset")
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	h := NewHistory(3)
	h.Append([]float64{1}, []float64{2})
	states, _ := h.Snapshot()
	states[0] = []float64{99}
	again, _ := h.Snapshot()
	if again[0][0] != 1 {
		t.Errorf("snapshot aliases internal state")
	}
}
