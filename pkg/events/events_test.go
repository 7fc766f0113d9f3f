package events_test

import (
	"encoding/json"
	"testing"

	"github.com/dukex/codeeasy/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectSaved(t *testing.T) {
	event := events.NewProjectSaved("project-1", "Shop", 2, 1)

	assert.Equal(t, events.ProjectSavedEvent, event.GetType())
	assert.Equal(t, events.ProjectSavedEvent, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, "project-1", event.ProjectID)
	assert.Equal(t, 2, event.Errors)
	assert.Equal(t, 1, event.Warnings)
}

func TestNewProjectDeleted(t *testing.T) {
	event := events.NewProjectDeleted("project-1")

	assert.Equal(t, events.ProjectDeletedEvent, event.GetType())
	assert.Equal(t, "project-1", event.ProjectID)
}

func TestProjectSaved_Payload(t *testing.T) {
	payload, err := json.Marshal(events.NewProjectSaved("project-1", "Shop", 0, 3))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "project.saved", decoded["type"])
	assert.Equal(t, "project-1", decoded["project_id"])
	assert.Equal(t, "Shop", decoded["label"])
	assert.EqualValues(t, 3, decoded["warnings"])
}
