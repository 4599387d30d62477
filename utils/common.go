package utils

const (
	// DefaultFramesPerOutput is the number of time steps between two stored
	// output frames
	DefaultFramesPerOutput = 25
)
