// internal/app/store/searchlog/searchlog.go
package searchlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/resourcehub/internal/app/system/validators"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is the Mongo collection entries are written to.
const Collection = "search_log"

// Entry records one resources query issued through the browse page.
type Entry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Search      string             `bson:"search"`
	SearchCI    string             `bson:"search_ci"` // folded for grouping
	CategoryIDs []string           `bson:"category_ids"`
	Page        int                `bson:"page"`
	TotalCount  int                `bson:"total_count"`
	TookMS      int64              `bson:"took_ms"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// SearchCount is one row of TopSearches. Search is the folded grouping key;
// Display is the most recently typed spelling of it.
type SearchCount struct {
	Search  string `bson:"_id"`
	Display string `bson:"display"`
	Count   int64  `bson:"count"`
}

// ErrInvalidPage is returned by Record for entries whose page is below 1.
var ErrInvalidPage = errors.New("search log entry page must be positive")

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection(Collection)}
}

// Schema is the JSON-Schema validator attached to the collection.
func Schema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"search", "search_ci", "category_ids", "page", "created_at"},
			"properties": bson.M{
				"search":       bson.M{"bsonType": "string"},
				"search_ci":    bson.M{"bsonType": "string"},
				"category_ids": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"page":         bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 1},
				"total_count":  bson.M{"bsonType": bson.A{"int", "long"}},
				"took_ms":      bson.M{"bsonType": bson.A{"int", "long"}},
				"created_at":   bson.M{"bsonType": "date"},
			},
		},
	}
}

// EnsureSchema creates the collection with its validator, then its indexes.
func (s *Store) EnsureSchema(ctx context.Context, logger *zap.Logger) error {
	if err := validators.EnsureCollection(ctx, s.db, Collection, Schema(), logger); err != nil {
		return err
	}
	return s.EnsureIndexes(ctx)
}

// EnsureIndexes creates the indexes Record and TopSearches rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "search_ci", Value: 1}}},
	})
	return err
}

// Record inserts e, filling SearchCI and CreatedAt.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Page < 1 {
		return ErrInvalidPage
	}
	e.ID = primitive.NewObjectID()
	e.Search = strings.TrimSpace(e.Search)
	e.SearchCI = text.Fold(e.Search)
	if e.CategoryIDs == nil {
		e.CategoryIDs = []string{}
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, e)
	return err
}

// PruneBefore deletes entries created before cutoff and returns how many
// were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// TopSearches returns the n most frequent non-empty searches recorded since
// the given time, most frequent first.
func (s *Store) TopSearches(ctx context.Context, since time.Time, n int) ([]SearchCount, error) {
	if n <= 0 {
		return []SearchCount{}, nil
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"search_ci":  bson.M{"$ne": ""},
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":     "$search_ci",
			"display": bson.M{"$first": "$search"},
			"count":   bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: n}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []SearchCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
