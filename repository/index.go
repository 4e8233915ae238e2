package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")

	noteIndexes := []mongo.IndexModel{
		// List ordering index
		{
			Keys: bson.D{
				{Key: "updatedAt", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().
				SetName("notes_updated_order"),
		},
		// Status index
		{
			Keys: bson.D{{Key: "status", Value: 1}},
			Options: options.Index().
				SetName("notes_status"),
		},
		// Text search index (not queried by any route yet)
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "contentPreview", Value: "text"},
			},
			Options: options.Index().
				SetName("notes_text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "contentPreview", Value: 5},
				}),
		},
	}

	_, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes)
	if err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
