// Package clock drives the playhead. It has no notion of wall time
// itself; the app loop measures each frame's delta and feeds it in, so
// tests can step the clock deterministically.
package clock

import "sync"

// Clock tracks the playhead position within a fixed-length timeline.
type Clock struct {
	mu       sync.Mutex
	current  float64
	duration float64
	playing  bool
}

// New returns a paused clock at 0 for a timeline of the given length in
// seconds.
func New(duration float64) *Clock {
	return &Clock{duration: duration}
}

// Tick advances the playhead by dt seconds while playing. When the
// playhead reaches the end it stops and rewinds to 0, so the next play
// starts from the top rather than resuming at the end.
func (c *Clock) Tick(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || dt <= 0 {
		return
	}
	c.current += dt
	if c.current >= c.duration {
		c.playing = false
		c.current = 0
	}
}

// Play starts playback from the current position.
func (c *Clock) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = true
}

// Pause freezes the playhead where it is.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
}

// Toggle flips between playing and paused.
func (c *Clock) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
}

// Seek pauses and moves the playhead to t, clamped to [0, duration].
// Pausing first keeps a scrub from racing the frame ticker.
func (c *Clock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	if t < 0 {
		t = 0
	}
	if t > c.duration {
		t = c.duration
	}
	c.current = t
}

// Now returns the playhead position in seconds.
func (c *Clock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Playing reports whether the clock is advancing.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Duration returns the timeline length in seconds.
func (c *Clock) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// SetDuration changes the timeline length, clamping the playhead if it
// now sits past the end.
func (c *Clock) SetDuration(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.duration = d
	if c.current > d {
		c.current = d
	}
}
