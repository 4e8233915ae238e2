package testutils

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"main/model"
	"main/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory NoteStore with the same observable semantics as
// the Mongo-backed repository: assigned ObjectIDs, managed timestamps,
// updatedAt-then-id descending sort and the repository sentinel errors.
type MemStore struct {
	mu    sync.Mutex
	notes map[primitive.ObjectID]*model.Note

	// Err, when set, is returned by every operation. Used to exercise the
	// server-error paths.
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{notes: make(map[primitive.ObjectID]*model.Note)}
}

func (s *MemStore) InsertNote(ctx context.Context, note *model.Note) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return primitive.NilObjectID, s.Err
	}

	now := time.Now()
	note.ID = primitive.NewObjectID()
	note.CreatedAt = now
	note.UpdatedAt = now

	stored := *note
	s.notes[note.ID] = &stored
	return note.ID, nil
}

func (s *MemStore) FindAllSorted(ctx context.Context) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	notes := make([]*model.Note, 0, len(s.notes))
	for _, note := range s.notes {
		copied := *note
		notes = append(notes, &copied)
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return bytes.Compare(notes[i].ID[:], notes[j].ID[:]) > 0
	})
	return notes, nil
}

func (s *MemStore) UpdateNoteByID(ctx context.Context, id string, patch *model.NotePatch) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidNoteID
	}

	note, ok := s.notes[oid]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}

	patch.Apply(note)
	note.UpdatedAt = time.Now()

	updated := *note
	return &updated, nil
}

func (s *MemStore) DeleteNoteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrInvalidNoteID
	}

	if _, ok := s.notes[oid]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(s.notes, oid)
	return nil
}

// Get returns a copy of a stored note for assertions.
func (s *MemStore) Get(id primitive.ObjectID) (model.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[id]
	if !ok {
		return model.Note{}, false
	}
	return *note, true
}

// SetUpdatedAt overrides a stored note's updatedAt, for ordering tests.
func (s *MemStore) SetUpdatedAt(id primitive.ObjectID, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if note, ok := s.notes[id]; ok {
		note.UpdatedAt = at
	}
}
