package model

// TaskStatus is where a paper download is in its lifecycle:
// Pending -> Starting -> Downloading -> Completed | Stopped | Error.
// Stopping is the short window between a stop request and the worker exiting.
type TaskStatus string

const (
	TaskStatusPending     TaskStatus = "Pending"
	TaskStatusStarting    TaskStatus = "Starting"
	TaskStatusDownloading TaskStatus = "Downloading"
	TaskStatusStopping    TaskStatus = "Stopping"
	TaskStatusStopped     TaskStatus = "Stopped"
	TaskStatusCompleted   TaskStatus = "Completed"
	TaskStatusError       TaskStatus = "Error"
)

func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive reports whether a worker currently owns the task.
func (ts TaskStatus) IsActive() bool {
	switch ts {
	case TaskStatusStarting, TaskStatusDownloading, TaskStatusStopping:
		return true
	}
	return false
}

// IsFinished reports whether the task reached a terminal state.
func (ts TaskStatus) IsFinished() bool {
	switch ts {
	case TaskStatusCompleted, TaskStatusStopped, TaskStatusError:
		return true
	}
	return false
}

// CanStop reports whether a stop request makes sense.
func (ts TaskStatus) CanStop() bool {
	return ts == TaskStatusPending || ts == TaskStatusStarting || ts == TaskStatusDownloading
}

// CanRestart reports whether the task may be queued again. A completed
// paper is not re-fetched.
func (ts TaskStatus) CanRestart() bool {
	return ts == TaskStatusStopped || ts == TaskStatusError
}
