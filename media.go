package willowxr

// MediaSource is the playback control a panel drives from its play, mute and
// seek controls. Times are in seconds.
type MediaSource interface {
	Play()
	Pause()
	Paused() bool
	SetMuted(muted bool)
	Muted() bool
	CurrentTime() float64
	Duration() float64
	Seek(t float64)
}

// mediaClock is implemented by sources that advance with the scene clock
// rather than on their own.
type mediaClock interface {
	Advance(dt float64)
}

// TimelineMedia is a MediaSource with no decoder behind it: a clock that runs
// while playing and stops at the end. Useful for previews and tests.
type TimelineMedia struct {
	duration float64
	current  float64
	paused   bool
	muted    bool
	// Loop restarts playback from zero when the end is reached.
	Loop bool
}

// NewTimelineMedia creates a paused timeline of the given length.
func NewTimelineMedia(duration float64) *TimelineMedia {
	if duration < 0 {
		duration = 0
	}
	return &TimelineMedia{duration: duration, paused: true}
}

func (m *TimelineMedia) Play()                { m.paused = false }
func (m *TimelineMedia) Pause()               { m.paused = true }
func (m *TimelineMedia) Paused() bool         { return m.paused }
func (m *TimelineMedia) SetMuted(muted bool)  { m.muted = muted }
func (m *TimelineMedia) Muted() bool          { return m.muted }
func (m *TimelineMedia) CurrentTime() float64 { return m.current }
func (m *TimelineMedia) Duration() float64    { return m.duration }

// Seek moves the playhead to t, clamped to [0, Duration].
func (m *TimelineMedia) Seek(t float64) {
	m.current = min(max(t, 0), m.duration)
}

// Advance moves the playhead forward by dt while playing. At the end the
// timeline pauses, or wraps to zero when Loop is set.
func (m *TimelineMedia) Advance(dt float64) {
	if m.paused || dt <= 0 {
		return
	}
	m.current += dt
	if m.current < m.duration {
		return
	}
	if m.Loop && m.duration > 0 {
		for m.current >= m.duration {
			m.current -= m.duration
		}
		return
	}
	m.current = m.duration
	m.paused = true
}

// mediaProgress returns current/duration in [0, 1], or 0 without a source.
func mediaProgress(m MediaSource) float64 {
	if m == nil {
		return 0
	}
	d := m.Duration()
	if d <= 0 {
		return 0
	}
	return clamp01(m.CurrentTime() / d)
}
