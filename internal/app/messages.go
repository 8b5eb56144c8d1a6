package app

import "time"

// tickMsg drives viewport reconciliation and redraws
type tickMsg struct {
	Timestamp time.Time
}

// ErrorMsg carries a failure from outside key dispatch into the error queue
type ErrorMsg struct {
	Err error
}
