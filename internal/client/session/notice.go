package session

import "time"

// NoticeTTL is how long login and logout confirmations stay visible.
const NoticeTTL = 3 * time.Second

// Notice is an informational message that may expire. A zero TTL means the
// notice stays until replaced.
type Notice struct {
	Text      string
	CreatedAt time.Time
	TTL       time.Duration
}

// Active reports whether the notice should still be shown at now.
func (n Notice) Active(now time.Time) bool {
	if n.Text == "" {
		return false
	}
	if n.TTL <= 0 {
		return true
	}
	return now.Before(n.CreatedAt.Add(n.TTL))
}

// Status is the outcome of the latest store operation. Seq identifies
// that operation and grows with every Register, Login and Logout call.
type Status struct {
	Seq     uint64
	Loading bool
	Error   string
	Notice  Notice
}

// Message returns the notice text if it is still active at now.
func (s Status) Message(now time.Time) string {
	if s.Notice.Active(now) {
		return s.Notice.Text
	}
	return ""
}
