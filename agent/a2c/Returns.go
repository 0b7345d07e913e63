package a2c

// Gamma is the discount factor used to compute n-step returns
const Gamma float32 = 0.99

// DiscountedReturn computes the n-step return of a window of rewards,
// bootstrapped with the value of the state the window ends in. The
// return is folded backwards from the last reward:
//
//	R ← bootstrap
//	R ← R·γ + rₖ  for k = n-1, ..., 0
func DiscountedReturn(rewards []float32, bootstrap, gamma float32) float32 {
	r := bootstrap
	for i := len(rewards) - 1; i >= 0; i-- {
		r = r*gamma + rewards[i]
	}
	return r
}
