package constants

// JobState tracks a job through the pipeline state machine.
type JobState string

// Stable values (store these exact strings in logs and job reports).
const (
	StateReceived   JobState = "RECEIVED"
	StateClassified JobState = "CLASSIFIED"
	StateExtracted  JobState = "EXTRACTED"
	StateReconciled JobState = "RECONCILED"
	StateAssembled  JobState = "ASSEMBLED"
	StatePersisted  JobState = "PERSISTED"  // terminal success
	StateSkipped    JobState = "SKIPPED"    // terminal: duplicate filename
	StateFailed     JobState = "FAILED"     // terminal failure
)
