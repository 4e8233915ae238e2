package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field limits enforced by truncation before every write
const (
	MaxTitleLen   = 300
	MaxPreviewLen = 3000
	MaxTags       = 20
)

type NoteStatus string

const (
	StatusActive   NoteStatus = "active"
	StatusArchived NoteStatus = "archived"
	StatusTrashed  NoteStatus = "trashed"
)

// IsValid reports whether s is one of the three allowed status values.
func (s NoteStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusArchived, StatusTrashed:
		return true
	}
	return false
}

type Note struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title          string             `bson:"title" json:"title" validate:"max=300"`
	Content        string             `bson:"content" json:"content"`
	ContentPreview string             `bson:"contentPreview" json:"contentPreview" validate:"max=3000"`
	Tags           []string           `bson:"tags" json:"tags" validate:"max=20"`
	IsPinned       bool               `bson:"isPinned" json:"isPinned"`
	Status         NoteStatus         `bson:"status" json:"status" validate:"oneof=active archived trashed"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NotePatch is a partial update: only non-nil fields are applied.
type NotePatch struct {
	Title          *string
	Content        *string
	ContentPreview *string
	Tags           *[]string
	IsPinned       *bool
	Status         *NoteStatus
}

// IsZero reports whether the patch carries no fields at all.
func (p *NotePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.ContentPreview == nil &&
		p.Tags == nil && p.IsPinned == nil && p.Status == nil
}

// Apply merges the present fields of the patch into note.
func (p *NotePatch) Apply(note *Note) {
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if p.ContentPreview != nil {
		note.ContentPreview = *p.ContentPreview
	}
	if p.Tags != nil {
		note.Tags = *p.Tags
	}
	if p.IsPinned != nil {
		note.IsPinned = *p.IsPinned
	}
	if p.Status != nil {
		note.Status = *p.Status
	}
}
