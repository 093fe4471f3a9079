package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newslens/internal/types"
)

// MongoStore keeps one document per keyword in a MongoDB collection,
// upserted on the keyword field.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoStore connects and pings before returning, so a bad URI fails
// at startup rather than on the first save.
func NewMongoStore(uri, database, collection string, logger *slog.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		logger:     logger.With("component", "mongo_store"),
	}, nil
}

func (s *MongoStore) Name() string { return "mongodb" }

func (s *MongoStore) Save(ctx context.Context, report *types.StoredReport) error {
	filter := bson.M{"keyword": report.Keyword}
	_, err := s.collection.ReplaceOne(ctx, filter, report, options.Replace().SetUpsert(true))
	if err != nil {
		return &types.StorageError{Backend: "mongodb", Keyword: report.Keyword, Err: err}
	}
	s.logger.Debug("report upserted", "keyword", report.Keyword)
	return nil
}

func (s *MongoStore) Load(ctx context.Context, keyword string) (*types.StoredReport, error) {
	var report types.StoredReport
	err := s.collection.FindOne(ctx, bson.M{"keyword": keyword}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &types.StorageError{Backend: "mongodb", Keyword: keyword, Err: types.ErrReportNotFound}
	}
	if err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Keyword: keyword, Err: err}
	}
	return &report, nil
}

func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "keyword", bson.D{})
	if err != nil {
		return nil, &types.StorageError{Backend: "mongodb", Err: err}
	}

	keywords := make([]string, 0, len(values))
	for _, v := range values {
		if kw, ok := v.(string); ok {
			keywords = append(keywords, kw)
		}
	}
	sort.Strings(keywords)
	return keywords, nil
}

func (s *MongoStore) Delete(ctx context.Context, keyword string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"keyword": keyword})
	if err != nil {
		return &types.StorageError{Backend: "mongodb", Keyword: keyword, Err: err}
	}
	if res.DeletedCount == 0 {
		return &types.StorageError{Backend: "mongodb", Keyword: keyword, Err: types.ErrReportNotFound}
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
