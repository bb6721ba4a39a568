package quiz

import (
	sess "pharmlet/internal/session"
)

// buildDoneMsg is sent when session building (pool load, generation,
// resume resolution) is complete.
type buildDoneMsg struct {
	State *sess.SessionState
	Err   error
}

// timerTickMsg advances the session clock. Ticks stamped with a session
// ID other than the active one are dropped, so a tick scheduled before
// a restart never starts a second chain.
type timerTickMsg struct {
	SessionID string
}

// reviewMsg asks the quiz screen to walk the finished session in
// review mode. Sent by the summary screen after it pops itself.
type reviewMsg struct{}
