package logic

import (
	"testing"

	"github.com/blues/lps/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngageIsIdempotent(t *testing.T) {
	l, db := setupTestLogic(t)
	e := NewEngagementLogic(db)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := int64(project.ID)

	require.NoError(t, e.Engage(id, testAlice, model.EngagementLike))
	require.NoError(t, e.Engage(id, testAlice, model.EngagementLike))
	require.NoError(t, e.Engage(id, testAlice, model.EngagementVote))
	require.NoError(t, e.Engage(id, testBob, model.EngagementLike))

	counts, err := e.GetCounts(id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["like"])
	assert.Equal(t, int64(1), counts["vote"])
	assert.Equal(t, int64(0), counts["watch"])

	engaged, err := e.HasEngaged(id, testAlice, model.EngagementLike)
	require.NoError(t, err)
	assert.True(t, engaged)
}

func TestDisengageRemovesRecord(t *testing.T) {
	l, db := setupTestLogic(t)
	e := NewEngagementLogic(db)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)
	id := int64(project.ID)

	require.NoError(t, e.Engage(id, testAlice, model.EngagementWatch))
	require.NoError(t, e.Disengage(id, testAlice, model.EngagementWatch))

	engaged, err := e.HasEngaged(id, testAlice, model.EngagementWatch)
	require.NoError(t, err)
	assert.False(t, engaged)
}

func TestEngageRejectsUnknownProjectAndKind(t *testing.T) {
	l, db := setupTestLogic(t)
	e := NewEngagementLogic(db)

	err := e.Engage(999, testAlice, model.EngagementLike)
	assert.Error(t, err)

	project, err := l.CreateProject(testOwner, "genesis", 1000)
	require.NoError(t, err)

	err = e.Engage(int64(project.ID), testAlice, model.EngagementKind("boost"))
	assert.Error(t, err)

	err = e.Engage(int64(project.ID), "", model.EngagementLike)
	assert.Error(t, err)
}
