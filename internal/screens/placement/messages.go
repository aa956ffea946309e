package placement

// questionsLoadedMsg is sent when the placement questions are attached or
// failed to load.
type questionsLoadedMsg struct {
	Err error
}
