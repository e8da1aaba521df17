package logic

import (
	"testing"

	"github.com/blues/lps/internal/launchpad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEventExtractsProjectId(t *testing.T) {
	db := setupTestDB(t)
	e := NewEventLogic(db)

	record, err := e.SaveEvent(&launchpad.Event{
		Type:       launchpad.EventTypeContributed,
		Attributes: map[string]string{"projectId": "7", "amount": "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ProjectId)
	assert.False(t, record.Processed)
	assert.Contains(t, record.Attributes, `"amount":"100"`)
}

func TestUnprocessedEventsAndMarking(t *testing.T) {
	db := setupTestDB(t)
	e := NewEventLogic(db)

	first, err := e.SaveEvent(&launchpad.Event{
		Type:       launchpad.EventTypeRaiseStarted,
		Attributes: map[string]string{"projectId": "1"},
	})
	require.NoError(t, err)
	_, err = e.SaveEvent(&launchpad.Event{
		Type:       launchpad.EventTypeRaiseEnded,
		Attributes: map[string]string{"projectId": "1"},
	})
	require.NoError(t, err)

	pending, err := e.GetUnprocessedEvents(10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, e.MarkProcessed(first.Id))

	pending, err = e.GetUnprocessedEvents(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, launchpad.EventTypeRaiseEnded, pending[0].EventType)
}
