package session

import "time"

//go:generate go tool mockgen -destination=./mocks/ports_mock.go -package=mocks . Clock,HighScoreStore

// Clock is a monotonic time source. Tick receives the same clock's readings; pause and
// resume read it directly so paused time can be cut out exactly.
type Clock interface {
	Now() time.Duration
}

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// SystemClock reads the process's monotonic clock relative to when it was created.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock { return &SystemClock{start: time.Now()} }

func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }
