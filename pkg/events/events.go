// Package events defines the project lifecycle notifications published after every stored change.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carrying every project event.
const Topic = "codeeasy.projects"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	ProjectSavedEvent   EventType = "project.saved"
	ProjectDeletedEvent EventType = "project.deleted"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	ProjectID string         `json:"project_id"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func newBaseEvent(eventType EventType, projectID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		ProjectID: projectID,
	}
}

// ProjectSaved is published after a new project snapshot was stored.
// Errors and Warnings count the diagnostics of the stored snapshot.
type ProjectSaved struct {
	BaseEvent

	Label    string `json:"label"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

func (e ProjectSaved) GetType() EventType {
	return ProjectSavedEvent
}

// NewProjectSaved creates a ProjectSaved event.
func NewProjectSaved(projectID, label string, errors, warnings int) ProjectSaved {
	return ProjectSaved{
		BaseEvent: newBaseEvent(ProjectSavedEvent, projectID),
		Label:     label,
		Errors:    errors,
		Warnings:  warnings,
	}
}

// ProjectDeleted is published after a project was removed from the store.
type ProjectDeleted struct {
	BaseEvent
}

func (e ProjectDeleted) GetType() EventType {
	return ProjectDeletedEvent
}

// NewProjectDeleted creates a ProjectDeleted event.
func NewProjectDeleted(projectID string) ProjectDeleted {
	return ProjectDeleted{BaseEvent: newBaseEvent(ProjectDeletedEvent, projectID)}
}
