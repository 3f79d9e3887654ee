package worldmodel

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// MDNRNN is a mixture density recurrent network: a single layer LSTM
// over (state, action) inputs with linear heads predicting a gaussian
// mixture over the next state, the reward and a continuation
// probability. Only the forward pass lives here; weights are either
// randomly initialized or loaded from elsewhere.
type MDNRNN struct {
	stateDim     int
	actionDim    int
	numHiddens   int
	numGaussians int

	// gate weights, each (numHiddens x stateDim+actionDim+numHiddens)
	wf, wi, wo, wg *mat.Dense
	bf, bi, bo, bg *mat.VecDense

	// head weights over the hidden state
	wMu, wSigma, wPi *mat.Dense
	wReward, wNotT   *mat.VecDense

	training bool
}

var _ MemoryNetwork = &MDNRNN{}

// NewMDNRNN with Xavier style random weights from the given seed
func NewMDNRNN(stateDim, actionDim, numHiddens, numGaussians int, seed uint64) *MDNRNN {
	src := rand.NewSource(seed)
	rng := rand.New(src)
	inDim := stateDim + actionDim + numHiddens

	newDense := func(rows, cols int) *mat.Dense {
		data := make([]float64, rows*cols)
		scale := math.Sqrt(2.0 / float64(cols))
		for i := range data {
			data[i] = rng.NormFloat64() * scale
		}
		return mat.NewDense(rows, cols, data)
	}
	newVec := func(cols int) *mat.VecDense {
		data := make([]float64, cols)
		scale := math.Sqrt(2.0 / float64(cols))
		for i := range data {
			data[i] = rng.NormFloat64() * scale
		}
		return mat.NewVecDense(cols, data)
	}

	return &MDNRNN{
		stateDim:     stateDim,
		actionDim:    actionDim,
		numHiddens:   numHiddens,
		numGaussians: numGaussians,

		wf: newDense(numHiddens, inDim),
		wi: newDense(numHiddens, inDim),
		wo: newDense(numHiddens, inDim),
		wg: newDense(numHiddens, inDim),
		bf: mat.NewVecDense(numHiddens, nil),
		bi: mat.NewVecDense(numHiddens, nil),
		bo: mat.NewVecDense(numHiddens, nil),
		bg: mat.NewVecDense(numHiddens, nil),

		wMu:     newDense(numGaussians*stateDim, numHiddens),
		wSigma:  newDense(numGaussians*stateDim, numHiddens),
		wPi:     newDense(numGaussians, numHiddens),
		wReward: newVec(numHiddens),
		wNotT:   newVec(numHiddens),
	}
}

func (m *MDNRNN) NumHiddens() int {
	return m.numHiddens
}

func (m *MDNRNN) Training() bool {
	return m.training
}

func (m *MDNRNN) SetTraining(training bool) {
	m.training = training
}

// Forward over a chronological sequence of (state, action) pairs,
// starting from a zero hidden state
func (m *MDNRNN) Forward(states, actions [][]float64) (*Output, error) {
	if len(states) != len(actions) {
		return nil, fmt.Errorf("mdnrnn: %d states but %d actions", len(states), len(actions))
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("mdnrnn: empty sequence")
	}

	seqLen := len(states)
	out := &Output{
		AllStepsHidden: make([][]float64, seqLen),
		Mus:            make([][][]float64, seqLen),
		Sigmas:         make([][][]float64, seqLen),
		LogPi:          make([][]float64, seqLen),
		Reward:         make([]float64, seqLen),
		NotTerminal:    make([]float64, seqLen),
	}

	h := mat.NewVecDense(m.numHiddens, nil)
	c := mat.NewVecDense(m.numHiddens, nil)
	inDim := m.stateDim + m.actionDim + m.numHiddens

	for t := 0; t < seqLen; t++ {
		if len(states[t]) != m.stateDim {
			return nil, fmt.Errorf("mdnrnn: state %d has dimension %d, want %d", t, len(states[t]), m.stateDim)
		}
		if len(actions[t]) != m.actionDim {
			return nil, fmt.Errorf("mdnrnn: action %d has dimension %d, want %d", t, len(actions[t]), m.actionDim)
		}

		// input is [state ; action ; previous hidden]
		x := mat.NewVecDense(inDim, nil)
		for i, v := range states[t] {
			x.SetVec(i, v)
		}
		for i, v := range actions[t] {
			x.SetVec(m.stateDim+i, v)
		}
		for i := 0; i < m.numHiddens; i++ {
			x.SetVec(m.stateDim+m.actionDim+i, h.AtVec(i))
		}

		f := gate(m.wf, m.bf, x, sigmoid)
		i := gate(m.wi, m.bi, x, sigmoid)
		o := gate(m.wo, m.bo, x, sigmoid)
		g := gate(m.wg, m.bg, x, math.Tanh)

		for j := 0; j < m.numHiddens; j++ {
			cj := f.AtVec(j)*c.AtVec(j) + i.AtVec(j)*g.AtVec(j)
			c.SetVec(j, cj)
			h.SetVec(j, o.AtVec(j)*math.Tanh(cj))
		}

		hidden := make([]float64, m.numHiddens)
		copy(hidden, h.RawVector().Data)
		out.AllStepsHidden[t] = hidden

		out.Mus[t], out.Sigmas[t], out.LogPi[t] = m.mixture(h)
		out.Reward[t] = mat.Dot(m.wReward, h)
		out.NotTerminal[t] = sigmoid(mat.Dot(m.wNotT, h))
	}
	return out, nil
}

// mixture computes the gaussian mixture heads for one hidden state
func (m *MDNRNN) mixture(h *mat.VecDense) ([][]float64, [][]float64, []float64) {
	raw := mat.NewVecDense(m.numGaussians*m.stateDim, nil)
	raw.MulVec(m.wMu, h)
	mus := make([][]float64, m.numGaussians)
	for k := 0; k < m.numGaussians; k++ {
		mus[k] = make([]float64, m.stateDim)
		for d := 0; d < m.stateDim; d++ {
			mus[k][d] = raw.AtVec(k*m.stateDim + d)
		}
	}

	raw.MulVec(m.wSigma, h)
	sigmas := make([][]float64, m.numGaussians)
	for k := 0; k < m.numGaussians; k++ {
		sigmas[k] = make([]float64, m.stateDim)
		for d := 0; d < m.stateDim; d++ {
			sigmas[k][d] = math.Exp(raw.AtVec(k*m.stateDim + d))
		}
	}

	logits := mat.NewVecDense(m.numGaussians, nil)
	logits.MulVec(m.wPi, h)
	logPi := logSoftmax(logits.RawVector().Data)
	return mus, sigmas, logPi
}

func gate(w *mat.Dense, b *mat.VecDense, x *mat.VecDense, act func(float64) float64) *mat.VecDense {
	rows, _ := w.Dims()
	out := mat.NewVecDense(rows, nil)
	out.MulVec(w, x)
	out.AddVec(out, b)
	for i := 0; i < rows; i++ {
		out.SetVec(i, act(out.AtVec(i)))
	}
	return out
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

func logSoftmax(logits []float64) []float64 {
	max := math.Inf(-1)
	for _, v := range logits {
		if v > max {
			max = v
		}
	}
	sum := 0.0
	for _, v := range logits {
		sum += math.Exp(v - max)
	}
	logSum := max + math.Log(sum)
	out := make([]float64, len(logits))
	for i, v := range logits {
		out[i] = v - logSum
	}
	return out
}
