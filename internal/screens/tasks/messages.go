package tasks

import "github.com/abhisek/educareer/internal/oracle"

// taskLoadedMsg is sent when the daily task is available or failed.
type taskLoadedMsg struct {
	Task *oracle.Task
	Err  error
}

// reviewedMsg is sent when the submission review returns. Err is set when
// Feedback is the fallback value.
type reviewedMsg struct {
	Feedback *oracle.Feedback
	Err      error
}
