package policies

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ronaldiscool/ReAgent/envs"
	"github.com/ronaldiscool/ReAgent/types"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// SoftMaxQPolicy is a tabular Q learning policy for discrete action
// spaces. Observations are discretized into table keys, actions are
// sampled from a softmax over the Q values.
type SoftMaxQPolicy struct {
	QTable      map[string][]float64
	alpha       float64
	gamma       float64
	temperature float64
	precision   int
	rand        rand.Source
}

var _ types.Policy = &SoftMaxQPolicy{}

func NewSoftMaxQPolicy(alpha, gamma, temperature float64) *SoftMaxQPolicy {
	return &SoftMaxQPolicy{
		QTable:      make(map[string][]float64),
		alpha:       alpha,
		gamma:       gamma,
		temperature: temperature,
		precision:   2,
		rand:        rand.NewSource(uint64(time.Now().UnixNano())),
	}
}

func (s *SoftMaxQPolicy) Reset() {
	s.QTable = make(map[string][]float64)
}

// hash discretizes the observation to a table key
func (s *SoftMaxQPolicy) hash(obs []float64) string {
	parts := make([]string, len(obs))
	for i, v := range obs {
		parts[i] = fmt.Sprintf("%.*f", s.precision, v)
	}
	return strings.Join(parts, ",")
}

func (s *SoftMaxQPolicy) row(key string, n int) []float64 {
	if _, ok := s.QTable[key]; !ok {
		s.QTable[key] = make([]float64, n)
	}
	return s.QTable[key]
}

func (s *SoftMaxQPolicy) NextAction(step int, obs []float64, space envs.Space) (envs.Action, bool) {
	discrete, ok := space.(*envs.Discrete)
	if !ok {
		return nil, false
	}
	qValues := s.row(s.hash(obs), discrete.N)

	sum := float64(0)
	weights := make([]float64, len(qValues))
	for i, q := range qValues {
		exp := math.Exp(q / s.temperature)
		weights[i] = exp
		sum += exp
	}
	for i := range weights {
		weights[i] = weights[i] / sum
	}
	i, ok := sampleuv.NewWeighted(weights, s.rand).Take()
	if !ok {
		return nil, false
	}
	return envs.DiscreteAction(i), true
}

func (s *SoftMaxQPolicy) Update(step int, obs []float64, action envs.Action, result *envs.StepResult) {
	da, ok := action.(envs.DiscreteAction)
	if !ok {
		return
	}
	key := s.hash(obs)
	row, ok := s.QTable[key]
	if !ok || int(da) >= len(row) {
		return
	}

	next := 0.0
	if !result.Terminal {
		if nextRow, ok := s.QTable[s.hash(result.Observation)]; ok {
			for _, v := range nextRow {
				if v > next {
					next = v
				}
			}
		}
	}
	cur := row[int(da)]
	row[int(da)] = (1-s.alpha)*cur + s.alpha*(result.Reward+s.gamma*next)
}

func (s *SoftMaxQPolicy) UpdateEpisode(_ int, _ *types.Trace) {}
