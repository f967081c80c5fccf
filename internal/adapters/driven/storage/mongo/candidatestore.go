package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure CandidateStore implements the interface.
var _ driven.CandidateStore = (*CandidateStore)(nil)

// candidateDoc is the stored shape of a candidate.
type candidateDoc struct {
	ID        string    `bson:"_id"`
	FullText  string    `bson:"full_text"`
	Embedding []float32 `bson:"embedding,omitempty"`
	Filename  string    `bson:"filename"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d *candidateDoc) toDomain() *domain.Candidate {
	return &domain.Candidate{
		ID:        d.ID,
		FullText:  d.FullText,
		Embedding: d.Embedding,
		Filename:  d.Filename,
		CreatedAt: d.CreatedAt,
	}
}

// CandidateStore persists candidates in the candidates collection.
type CandidateStore struct {
	coll *mongo.Collection
}

// NewCandidateStore creates a candidate store on db.
func NewCandidateStore(db *mongo.Database) *CandidateStore {
	return &CandidateStore{coll: db.Collection(candidatesCollection)}
}

// InsertCandidate stores a new candidate.
func (s *CandidateStore) InsertCandidate(ctx context.Context, c *domain.Candidate) error {
	doc := candidateDoc{
		ID:        c.ID,
		FullText:  c.FullText,
		Embedding: c.Embedding,
		Filename:  c.Filename,
		CreatedAt: c.CreatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID.
func (s *CandidateStore) GetCandidate(ctx context.Context, id string) (*domain.Candidate, error) {
	var doc candidateDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return doc.toDomain(), nil
}

// SetCandidateEmbedding backfills the embedding field.
func (s *CandidateStore) SetCandidateEmbedding(ctx context.Context, id string, embedding []float32) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"embedding": embedding}})
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCandidatesMissingEmbedding returns up to limit candidates without a
// vector, oldest first.
func (s *CandidateStore) ListCandidatesMissingEmbedding(ctx context.Context, limit int) ([]domain.Candidate, error) {
	filter := bson.M{"embedding": bson.M{"$exists": false}}
	opts := options.Find().SetSort(bson.M{"created_at": 1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Candidate
	for cursor.Next(ctx) {
		var doc candidateDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	return out, cursor.Err()
}
