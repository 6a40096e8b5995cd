package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when the requested chapter does not exist. A
// collaboration join against a missing chapter is rejected with this error;
// the store never creates chapters implicitly.
var ErrNotFound = errors.New("document not found")

// ChapterStore holds the canonical text of each book chapter, keyed by slug.
// Writes are whole-content replacements with no version check: concurrent
// writers apply last-write-wins by arrival order at the store.
type ChapterStore struct {
	col *mongo.Collection
}

type chapterDoc struct {
	Slug    string `bson:"slug"`
	Content string `bson:"content"`
}

// NewMongoClient connects to MongoDB with a bounded handshake timeout.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is empty")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return mongo.Connect(ctx, options.Client().ApplyURI(uri))
}

// NewChapterStore wraps the chapters collection and ensures the slug index.
func NewChapterStore(client *mongo.Client, dbName, colName string) *ChapterStore {
	col := client.Database(dbName).Collection(colName)
	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return &ChapterStore{col: col}
}

// GetContent returns the current text of the chapter identified by slug.
func (s *ChapterStore) GetContent(ctx context.Context, slug string) (string, error) {
	var doc chapterDoc
	err := s.col.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// SaveContent replaces the chapter's text. The chapter must already exist;
// updating a missing slug reports ErrNotFound rather than upserting.
func (s *ChapterStore) SaveContent(ctx context.Context, slug, content string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
