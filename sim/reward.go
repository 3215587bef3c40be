package sim

// Reward converts a placement cost into a scalar reward:
//
//	reward = −(delay / normalization) − utilization
//
// Higher (less negative) is better. Callers must pass non-negative delay and a
// positive normalization; Config.Validate enforces the latter.
func Reward(delay, utilization, normalization float64) float64 {
	return -(delay / normalization) - utilization
}
