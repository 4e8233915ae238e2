package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/test/testutils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() (*NotesService, *testutils.MemStore) {
	store := testutils.NewMemStore()
	return &NotesService{NotesRepo: store}, store
}

func TestCreateNoteDefaults(t *testing.T) {
	svc, store := newTestService()

	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Tags: []string{}})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	note, ok := store.Get(id)
	if !ok {
		t.Fatal("Created note not stored")
	}
	if note.Status != model.StatusActive {
		t.Errorf("Expected status active, got %q", note.Status)
	}
	if note.Title != "" {
		t.Errorf("Expected empty title, got %q", note.Title)
	}
	if len(note.Tags) != 0 {
		t.Errorf("Expected empty tags, got %v", note.Tags)
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestCreateNoteClamps(t *testing.T) {
	svc, store := newTestService()

	tags := make([]string, 30)
	for i := range tags {
		tags[i] = "tag"
	}

	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{
		Title:          strings.Repeat("a", 500),
		Content:        strings.Repeat("b", 10000),
		ContentPreview: strings.Repeat("c", 5000),
		Tags:           tags,
	})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	note, _ := store.Get(id)
	if len(note.Title) != model.MaxTitleLen {
		t.Errorf("Expected title clamped to %d, got %d", model.MaxTitleLen, len(note.Title))
	}
	if len(note.Content) != 10000 {
		t.Errorf("Expected content unbounded, got %d", len(note.Content))
	}
	if len(note.ContentPreview) != model.MaxPreviewLen {
		t.Errorf("Expected preview clamped to %d, got %d", model.MaxPreviewLen, len(note.ContentPreview))
	}
	if len(note.Tags) != model.MaxTags {
		t.Errorf("Expected tags clamped to %d, got %d", model.MaxTags, len(note.Tags))
	}
}

func TestCreateNoteTrimsTitle(t *testing.T) {
	svc, store := newTestService()

	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Title: "  hi  "})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	note, _ := store.Get(id)
	if note.Title != "hi" {
		t.Errorf("Expected trimmed title %q, stored %q", "hi", note.Title)
	}

	// The length cap applies before the trim
	id, err = svc.CreateNote(context.Background(), dto.CreateNoteRequest{
		Title: strings.Repeat(" ", model.MaxTitleLen) + "tail",
	})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	note, _ = store.Get(id)
	if note.Title != "" {
		t.Errorf("Expected clamp-then-trim to store empty title, got %q", note.Title)
	}
}

func TestCreateNoteDoesNotNormalizeTagContent(t *testing.T) {
	svc, store := newTestService()

	// Trimming and empty-filtering are the client's job; the server only
	// caps the count.
	tags := []string{"a", "a", "  b  ", "", "c"}
	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Tags: tags})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	note, _ := store.Get(id)
	if !reflect.DeepEqual(note.Tags, tags) {
		t.Errorf("Expected tags stored verbatim %v, got %v", tags, note.Tags)
	}
}

func TestUpdateNote(t *testing.T) {
	svc, store := newTestService()

	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Title: "before"})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	t.Run("Applies Present Fields Only", func(t *testing.T) {
		title := "after"
		updated, err := svc.UpdateNote(context.Background(), id.Hex(), &model.NotePatch{Title: &title})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		if updated.Title != "after" {
			t.Errorf("Expected updated title, got %q", updated.Title)
		}
		if updated.Status != model.StatusActive {
			t.Errorf("Expected status untouched, got %q", updated.Status)
		}
	})

	t.Run("Clamps Applied Fields", func(t *testing.T) {
		long := strings.Repeat("x", 400)
		updated, err := svc.UpdateNote(context.Background(), id.Hex(), &model.NotePatch{Title: &long})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		if len(updated.Title) != model.MaxTitleLen {
			t.Errorf("Expected clamped title, got %d chars", len(updated.Title))
		}
	})

	t.Run("Trims Applied Title", func(t *testing.T) {
		padded := "  padded  "
		updated, err := svc.UpdateNote(context.Background(), id.Hex(), &model.NotePatch{Title: &padded})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		if updated.Title != "padded" {
			t.Errorf("Expected trimmed title, got %q", updated.Title)
		}
	})

	t.Run("Bumps UpdatedAt", func(t *testing.T) {
		before, _ := store.Get(id)
		store.SetUpdatedAt(id, before.UpdatedAt.Add(-time.Hour))

		title := "bump"
		updated, err := svc.UpdateNote(context.Background(), id.Hex(), &model.NotePatch{Title: &title})
		if err != nil {
			t.Fatalf("UpdateNote failed: %v", err)
		}
		if !updated.UpdatedAt.After(before.UpdatedAt.Add(-time.Hour)) {
			t.Error("Expected updatedAt to move forward")
		}
	})

	t.Run("Unknown Id", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdateNote(context.Background(), "bbbbbbbbbbbbbbbbbbbbbbbb", &model.NotePatch{Title: &title})
		if !errors.Is(err, repository.ErrNoteNotFound) {
			t.Errorf("Expected ErrNoteNotFound, got %v", err)
		}
	})

	t.Run("Malformed Id", func(t *testing.T) {
		_, err := svc.UpdateNote(context.Background(), "not-an-id", &model.NotePatch{})
		if !errors.Is(err, repository.ErrInvalidNoteID) {
			t.Errorf("Expected ErrInvalidNoteID, got %v", err)
		}
	})
}

func TestTrashAndDeleteNote(t *testing.T) {
	svc, store := newTestService()

	id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Title: "doomed"})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	// Soft delete keeps the record with status trashed
	if err := svc.TrashNote(context.Background(), id.Hex()); err != nil {
		t.Fatalf("TrashNote failed: %v", err)
	}
	note, ok := store.Get(id)
	if !ok {
		t.Fatal("Expected trashed note to be retained")
	}
	if note.Status != model.StatusTrashed {
		t.Errorf("Expected status trashed, got %q", note.Status)
	}

	// Hard delete removes it entirely
	if err := svc.DeleteNote(context.Background(), id.Hex()); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	if _, ok := store.Get(id); ok {
		t.Error("Expected hard-deleted note to be gone")
	}

	// Repeat hard delete reports not found
	if err := svc.DeleteNote(context.Background(), id.Hex()); !errors.Is(err, repository.ErrNoteNotFound) {
		t.Errorf("Expected ErrNoteNotFound on repeat delete, got %v", err)
	}
}

func TestListNotesOrdering(t *testing.T) {
	svc, store := newTestService()

	ids := make([]primitive.ObjectID, 3)
	for i, title := range []string{"first", "second", "third"} {
		id, err := svc.CreateNote(context.Background(), dto.CreateNoteRequest{Title: title})
		if err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
		ids[i] = id
	}

	// T1 > T2 = T3: the newest update first, the tie broken by id descending
	base := time.Now().Truncate(time.Millisecond)
	for i, offset := range []time.Duration{time.Hour, 0, 0} {
		store.SetUpdatedAt(ids[i], base.Add(offset))
	}

	for run := 0; run < 3; run++ {
		notes, err := svc.ListNotes(context.Background())
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(notes) != 3 {
			t.Fatalf("Expected 3 notes, got %d", len(notes))
		}
		if notes[0].Title != "first" {
			t.Errorf("Expected newest update first, got %q", notes[0].Title)
		}
		// ids[2] was inserted after ids[1], so its ObjectID sorts higher
		if notes[1].Title != "third" || notes[2].Title != "second" {
			t.Errorf("Expected tie broken by id descending, got [%q, %q]",
				notes[1].Title, notes[2].Title)
		}
	}
}
