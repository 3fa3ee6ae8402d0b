package learning

import (
	"math/rand"

	"github.com/mitchelldurbincs/NebulaDominion/internal/common"
)

// EpsilonGreedy explores uniformly with probability epsilon, otherwise
// takes the first best action
func EpsilonGreedy(rng *rand.Rand, epsilon float64, v Values) Action {
	if rng.Float64() < epsilon {
		return Action(rng.Intn(NumActions))
	}
	return Action(common.ArgMax(v[:]))
}

// SoftmaxSample draws an action with probability proportional to exp(value)
func SoftmaxSample(rng *rand.Rand, v Values) Action {
	probs := common.Softmax(v[:])
	x := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if x < acc {
			return Action(i)
		}
	}
	return Action(NumActions - 1)
}

// NoisyArgmax adds gaussian jitter scaled by noise before taking the argmax,
// which breaks ties between equal values at random
func NoisyArgmax(rng *rand.Rand, noise float64, v Values) Action {
	var jittered Values
	for i, val := range v {
		jittered[i] = val + rng.NormFloat64()*noise
	}
	return Action(common.ArgMax(jittered[:]))
}
