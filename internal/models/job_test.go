package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{"pending to in_progress", JobStatusPending, JobStatusInProgress, true},
		{"pending to cancelled", JobStatusPending, JobStatusCancelled, true},
		{"pending to completed", JobStatusPending, JobStatusCompleted, false},
		{"pending to on_hold", JobStatusPending, JobStatusOnHold, false},
		{"in_progress to completed", JobStatusInProgress, JobStatusCompleted, true},
		{"in_progress to on_hold", JobStatusInProgress, JobStatusOnHold, true},
		{"in_progress to cancelled", JobStatusInProgress, JobStatusCancelled, true},
		{"in_progress to pending", JobStatusInProgress, JobStatusPending, false},
		{"on_hold to in_progress", JobStatusOnHold, JobStatusInProgress, true},
		{"on_hold to cancelled", JobStatusOnHold, JobStatusCancelled, true},
		{"on_hold to completed", JobStatusOnHold, JobStatusCompleted, false},
		{"completed is terminal", JobStatusCompleted, JobStatusInProgress, false},
		{"cancelled is terminal", JobStatusCancelled, JobStatusInProgress, false},
		{"unknown status", "archived", JobStatusInProgress, false},
		{"same status", JobStatusInProgress, JobStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(JobStatusCompleted))
	assert.True(t, IsTerminalStatus(JobStatusCancelled))
	assert.False(t, IsTerminalStatus(JobStatusPending))
	assert.False(t, IsTerminalStatus(JobStatusInProgress))
	assert.False(t, IsTerminalStatus(JobStatusOnHold))
}

func TestDowntimeMinutesAt(t *testing.T) {
	created := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, DowntimeMinutesAt(created, created.Add(90*time.Minute)))
	assert.Equal(t, 0, DowntimeMinutesAt(created, created))

	// Sub-minute downtime truncates to zero
	assert.Equal(t, 0, DowntimeMinutesAt(created, created.Add(45*time.Second)))

	// Clock skew must not produce negative downtime
	assert.Equal(t, 0, DowntimeMinutesAt(created, created.Add(-10*time.Minute)))
}

func TestValidJobPriority(t *testing.T) {
	for _, p := range []string{JobPriorityLow, JobPriorityNormal, JobPriorityHigh, JobPriorityUrgent} {
		assert.True(t, ValidJobPriority(p), p)
	}
	assert.False(t, ValidJobPriority("critical"))
	assert.False(t, ValidJobPriority(""))
}
