package probe

// Contract limits checked by the probe.
const (
	MaxCards       = 30
	LivenessStatus = "online"
)

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)
