package common

// The engine advances in fixed frames; per-frame values become per-second
// values by dividing by SecondsPerFrame.
const (
	FramesPerSecond = 60.0
	SecondsPerFrame = 1.0 / FramesPerSecond
)
