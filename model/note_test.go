package model

import (
	"reflect"
	"testing"
)

func TestNoteStatusIsValid(t *testing.T) {
	valid := []NoteStatus{StatusActive, StatusArchived, StatusTrashed}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("Expected %q to be valid", s)
		}
	}

	invalid := []NoteStatus{"", "bogus", "Active", "deleted"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestNotePatchApply(t *testing.T) {
	note := Note{
		Title:    "old",
		Content:  "body",
		Tags:     []string{"a"},
		IsPinned: true,
		Status:   StatusActive,
	}

	title := "new"
	tags := []string{"b", "c"}
	trashed := StatusTrashed
	patch := NotePatch{
		Title:  &title,
		Tags:   &tags,
		Status: &trashed,
	}
	patch.Apply(&note)

	if note.Title != "new" {
		t.Errorf("Expected title to change, got %q", note.Title)
	}
	if note.Content != "body" {
		t.Errorf("Expected content untouched, got %q", note.Content)
	}
	if !reflect.DeepEqual(note.Tags, tags) {
		t.Errorf("Expected tags replaced, got %v", note.Tags)
	}
	if !note.IsPinned {
		t.Error("Expected isPinned untouched")
	}
	if note.Status != StatusTrashed {
		t.Errorf("Expected status trashed, got %q", note.Status)
	}

	empty := NotePatch{}
	if !empty.IsZero() {
		t.Error("Expected empty patch to be zero")
	}
	if patch.IsZero() {
		t.Error("Expected populated patch to be non-zero")
	}
}
