package types

// TraceStep is one recorded transition
type TraceStep struct {
	Observation []float64 `json:"obs"`
	Action      []float64 `json:"action"`
	Reward      float64   `json:"reward"`
	Terminal    bool      `json:"terminal"`
}

// Trace of an episode as the sequence of transitions taken
type Trace struct {
	Steps []*TraceStep `json:"steps"`
}

func NewTrace() *Trace {
	return &Trace{
		Steps: make([]*TraceStep, 0),
	}
}

func (t *Trace) Append(obs, action []float64, reward float64, terminal bool) {
	t.Steps = append(t.Steps, &TraceStep{
		Observation: obs,
		Action:      action,
		Reward:      reward,
		Terminal:    terminal,
	})
}

func (t *Trace) Len() int {
	return len(t.Steps)
}

func (t *Trace) Get(i int) (*TraceStep, bool) {
	if i < 0 || i >= len(t.Steps) {
		return nil, false
	}
	return t.Steps[i], true
}

func (t *Trace) Last() (*TraceStep, bool) {
	if len(t.Steps) == 0 {
		return nil, false
	}
	return t.Steps[len(t.Steps)-1], true
}

// Return is the undiscounted sum of rewards in the trace
func (t *Trace) Return() float64 {
	total := 0.0
	for _, s := range t.Steps {
		total += s.Reward
	}
	return total
}
