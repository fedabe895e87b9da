package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every status is exactly one of waiting, running or finished.
func TestTaskStatus_Lifecycle(t *testing.T) {
	tests := []struct {
		status     TaskStatus
		active     bool
		finished   bool
		canStop    bool
		canRestart bool
	}{
		{TaskStatusPending, false, false, true, false},
		{TaskStatusStarting, true, false, true, false},
		{TaskStatusDownloading, true, false, true, false},
		{TaskStatusStopping, true, false, false, false},
		{TaskStatusStopped, false, true, false, true},
		{TaskStatusCompleted, false, true, false, false},
		{TaskStatusError, false, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.active, tt.status.IsActive())
			assert.Equal(t, tt.finished, tt.status.IsFinished())
			assert.Equal(t, tt.canStop, tt.status.CanStop())
			assert.Equal(t, tt.canRestart, tt.status.CanRestart())
		})
	}
}

func TestTaskStatus_StringMatchesRowLabel(t *testing.T) {
	assert.Equal(t, "Downloading", TaskStatusDownloading.String())
	assert.Equal(t, "Completed", TaskStatusCompleted.String())
	assert.Equal(t, "Error", TaskStatusError.String())
}
