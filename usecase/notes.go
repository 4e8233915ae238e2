package usecase

import (
	"context"
	"fmt"
	"strings"

	"main/dto"
	"main/model"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrValidation marks a note that violates schema constraints after
// normalization. Translated to a client error by the handlers.
var ErrValidation = fmt.Errorf("note validation failed")

var validate = validator.New()

// NoteStore is the persistence contract the service depends on.
type NoteStore interface {
	InsertNote(ctx context.Context, note *model.Note) (primitive.ObjectID, error)
	FindAllSorted(ctx context.Context) ([]*model.Note, error)
	UpdateNoteByID(ctx context.Context, id string, patch *model.NotePatch) (*model.Note, error)
	DeleteNoteByID(ctx context.Context, id string) error
}

type NotesService struct {
	NotesRepo NoteStore
}

func validateNote(note *model.Note) error {
	if err := validate.Struct(note); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// normalizeTitle clamps then trims, in that order: the length cap applies to
// the raw input, the stored value carries no surrounding whitespace.
func normalizeTitle(title string) string {
	return strings.TrimSpace(truncate(title, model.MaxTitleLen))
}

func truncateTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	if len(tags) > model.MaxTags {
		return tags[:model.MaxTags]
	}
	return tags
}

// CreateNote normalizes the request, forces the status to active and inserts
// the note. Over-long fields are truncated, never rejected; the title is
// stored trimmed.
func (svc *NotesService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (primitive.ObjectID, error) {
	note := &model.Note{
		Title:          normalizeTitle(req.Title),
		Content:        req.Content,
		ContentPreview: truncate(req.ContentPreview, model.MaxPreviewLen),
		Tags:           truncateTags(req.Tags),
		IsPinned:       req.IsPinned,
		Status:         model.StatusActive,
	}

	if err := validateNote(note); err != nil {
		return primitive.NilObjectID, err
	}

	return svc.NotesRepo.InsertNote(ctx, note)
}

// ListNotes returns every note, newest update first.
func (svc *NotesService) ListNotes(ctx context.Context) ([]*model.Note, error) {
	return svc.NotesRepo.FindAllSorted(ctx)
}

// UpdateNote applies a partial update and returns the full updated note.
// Present fields were already type-checked by the dto layer; this only
// re-clamps lengths and trims the title before persistence.
func (svc *NotesService) UpdateNote(ctx context.Context, id string, patch *model.NotePatch) (*model.Note, error) {
	if patch.Title != nil {
		t := normalizeTitle(*patch.Title)
		patch.Title = &t
	}
	if patch.ContentPreview != nil {
		p := truncate(*patch.ContentPreview, model.MaxPreviewLen)
		patch.ContentPreview = &p
	}
	if patch.Tags != nil {
		tags := truncateTags(*patch.Tags)
		patch.Tags = &tags
	}

	return svc.NotesRepo.UpdateNoteByID(ctx, id, patch)
}

// TrashNote soft-deletes: the note is kept with status trashed.
func (svc *NotesService) TrashNote(ctx context.Context, id string) error {
	trashed := model.StatusTrashed
	_, err := svc.NotesRepo.UpdateNoteByID(ctx, id, &model.NotePatch{Status: &trashed})
	return err
}

// DeleteNote permanently removes the note, whatever its status.
func (svc *NotesService) DeleteNote(ctx context.Context, id string) error {
	return svc.NotesRepo.DeleteNoteByID(ctx, id)
}
