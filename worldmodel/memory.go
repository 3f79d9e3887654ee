package worldmodel

// MemoryNetwork is a recurrent world model consuming a chronological
// sequence of (state, action) pairs. The hidden state after the last
// step summarizes the whole sequence and is what callers typically use
// as an embedding of the history.
type MemoryNetwork interface {
	// Forward runs the model over equal-length state and action
	// sequences, oldest first
	Forward(states, actions [][]float64) (*Output, error)
	// NumHiddens is the dimension of the hidden state vectors
	NumHiddens() int
	// Training reports the current mode flag
	Training() bool
	// SetTraining switches between training and evaluation mode
	SetTraining(bool)
}

// Output of a forward pass, one entry per input time step
type Output struct {
	// Hidden state after each step, each of length NumHiddens
	AllStepsHidden [][]float64
	// Mixture density parameters for the next-state prediction:
	// per step, per mixture component
	Mus    [][][]float64
	Sigmas [][][]float64
	LogPi  [][]float64
	// Predicted reward and continuation probability per step
	Reward      []float64
	NotTerminal []float64
}

// LastHidden is the hidden state after the final time step
func (o *Output) LastHidden() []float64 {
	return o.AllStepsHidden[len(o.AllStepsHidden)-1]
}
