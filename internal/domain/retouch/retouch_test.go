package retouch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

func TestApply_Cycle(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	item := &models.RetouchItem{ID: 3, Status: string(StatusAwaitingSelection)}

	_, err := Apply(item, TransitionInput{To: StatusInProgress}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_selected_image"))

	_, err = Apply(item, TransitionInput{To: StatusInProgress, SelectedImageURL: "/uploads/a.jpg"}, now)
	require.NoError(t, err)
	require.NotNil(t, item.StartedAt)
	started := *item.StartedAt

	_, err = Apply(item, TransitionInput{To: StatusAwaitingApproval}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_retouch_image"))

	_, err = Apply(item, TransitionInput{To: StatusAwaitingApproval, RetouchImageURL: "/uploads/b.jpg"}, now)
	require.NoError(t, err)

	_, err = Apply(item, TransitionInput{To: StatusRevisionRequested}, now)
	assert.True(t, httperr.IsBusiness(err, "missing_note"))

	note, err := Apply(item, TransitionInput{To: StatusRevisionRequested, Note: "Làm sáng da", Author: "Mai"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, item.RevisionCount)
	assert.Equal(t, "Chờ khách duyệt → Cần chỉnh sửa. Làm sáng da", note.Content)
	assert.Equal(t, uint(3), note.RetouchItemID)

	_, err = Apply(item, TransitionInput{To: StatusInProgress}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, started, *item.StartedAt)

	_, err = Apply(item, TransitionInput{To: StatusAwaitingApproval}, now)
	require.NoError(t, err)
	_, err = Apply(item, TransitionInput{To: StatusCompleted}, now)
	require.NoError(t, err)
	assert.NotNil(t, item.CompletedAt)
	assert.True(t, Machine.IsTerminal(StatusCompleted))
}

func TestApply_InvalidTransition(t *testing.T) {
	item := &models.RetouchItem{Status: string(StatusAwaitingSelection)}

	_, err := Apply(item, TransitionInput{To: StatusCompleted}, time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, IsOverdue(&models.RetouchItem{Status: "in_progress", Deadline: &past}, now))
	assert.False(t, IsOverdue(&models.RetouchItem{Status: "completed", Deadline: &past}, now))
	assert.False(t, IsOverdue(&models.RetouchItem{Status: "in_progress", Deadline: &future}, now))
	assert.False(t, IsOverdue(&models.RetouchItem{Status: "in_progress"}, now))
}
