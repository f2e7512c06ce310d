package app

import "time"

// FrameTimer measures per-frame time and a rolling frame rate, the way a
// stats overlay does.
type FrameTimer struct {
	// Window is how often FPS is recomputed. Zero means one second.
	Window time.Duration

	begin       time.Duration
	windowStart time.Duration
	frames      int
	started     bool

	fps  float64
	last time.Duration
}

func (t *FrameTimer) Begin(now time.Duration) {
	if !t.started {
		t.windowStart = now
		t.started = true
	}
	t.begin = now
}

// End closes the frame opened by Begin. It reports true when a new FPS
// value has just been computed.
func (t *FrameTimer) End(now time.Duration) bool {
	t.last = now - t.begin
	t.frames++
	window := t.Window
	if window <= 0 {
		window = time.Second
	}
	elapsed := now - t.windowStart
	if elapsed < window {
		return false
	}
	t.fps = float64(t.frames) / elapsed.Seconds()
	t.frames = 0
	t.windowStart = now
	return true
}

// FPS is the frame rate over the last completed window.
func (t *FrameTimer) FPS() float64 { return t.fps }

// FrameTime is the duration of the last frame.
func (t *FrameTimer) FrameTime() time.Duration { return t.last }
