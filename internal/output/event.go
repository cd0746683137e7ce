package output

// Event is a lifecycle record for NDJSON streaming output.
//
// Event types:
// - run.started
// - dir.skipped   (failed validation, never extracted)
// - dir.failed    (an extractor failed; the directory has no report row)
// - dir.finished  (extracted; Metrics holds the directory's values)
// - run.finished
type Event struct {
	Type    string         `json:"type"`
	RunID   string         `json:"run_id,omitempty"`
	Dir     string         `json:"dir,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Metrics map[string]any `json:"metrics,omitempty"`
	Dirs    int            `json:"dirs,omitempty"`
	Rows    int            `json:"rows,omitempty"`
	Skipped int            `json:"skipped,omitempty"`
	Failed  int            `json:"failed,omitempty"`
}

const (
	EventRunStarted  = "run.started"
	EventDirSkipped  = "dir.skipped"
	EventDirFailed   = "dir.failed"
	EventDirFinished = "dir.finished"
	EventRunFinished = "run.finished"
)
