package repository

import (
	"context"
	"errors"
	"time"

	"main/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrInvalidNoteID = errors.New("invalid note id")
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, dbName string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(dbName).Collection("notes"),
	}
}

func parseNoteID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidNoteID
	}
	return oid, nil
}

// InsertNote inserts a new note and returns its assigned id.
func (r *NotesRepo) InsertNote(ctx context.Context, note *model.Note) (primitive.ObjectID, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	result, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		return primitive.NilObjectID, err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("unexpected inserted id type")
	}
	note.ID = oid
	return oid, nil
}

// FindAllSorted retrieves every note, newest update first. Ties on updatedAt
// are broken by _id descending so repeated reads return the same order.
func (r *NotesRepo) FindAllSorted(ctx context.Context) ([]*model.Note, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "updatedAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []*model.Note{}
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNoteByID applies the present fields of patch to the note and returns
// the updated document.
func (r *NotesRepo) UpdateNoteByID(ctx context.Context, id string, patch *model.NotePatch) (*model.Note, error) {
	oid, err := parseNoteID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.ContentPreview != nil {
		set["contentPreview"] = *patch.ContentPreview
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.IsPinned != nil {
		set["isPinned"] = *patch.IsPinned
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Note
	err = r.MongoCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// DeleteNoteByID permanently removes a note.
func (r *NotesRepo) DeleteNoteByID(ctx context.Context, id string) error {
	oid, err := parseNoteID(id)
	if err != nil {
		return err
	}

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoteNotFound
	}
	return nil
}
