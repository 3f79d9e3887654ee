package stateembed

import "fmt"

// History holds the most recent (state, action) pairs in chronological
// order, evicting the oldest pair once the capacity is reached. Both
// sequences always have the same length.
type History struct {
	maxLen  int
	states  [][]float64
	actions [][]float64
}

func NewHistory(maxLen int) *History {
	return &History{
		maxLen:  maxLen,
		states:  make([][]float64, 0, maxLen),
		actions: make([][]float64, 0, maxLen),
	}
}

// Reset clears both sequences
func (h *History) Reset() {
	h.states = make([][]float64, 0, h.maxLen)
	h.actions = make([][]float64, 0, h.maxLen)
}

// Append a pair, evicting the oldest one when full
func (h *History) Append(state, action []float64) {
	h.states = append(h.states, state)
	h.actions = append(h.actions, action)
	if len(h.states) > h.maxLen {
		h.states = h.states[1:]
		h.actions = h.actions[1:]
	}
	h.assertBalanced()
}

// Snapshot of the current sequences, oldest first, possibly empty
func (h *History) Snapshot() ([][]float64, [][]float64) {
	h.assertBalanced()
	states := make([][]float64, len(h.states))
	actions := make([][]float64, len(h.actions))
	copy(states, h.states)
	copy(actions, h.actions)
	return states, actions
}

func (h *History) Len() int {
	return len(h.states)
}

func (h *History) assertBalanced() {
	if len(h.states) != len(h.actions) {
		panic(fmt.Sprintf("history: %d states but %d actions", len(h.states), len(h.actions)))
	}
}
