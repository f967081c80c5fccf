package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentia-labs/talentia/internal/core/domain"
	"github.com/talentia-labs/talentia/internal/core/ports/driven"
)

// Ensure JobStore implements the interface.
var _ driven.JobStore = (*JobStore)(nil)

// jobDoc is the stored shape of a posting.
type jobDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Company     string    `bson:"company"`
	Description string    `bson:"description"`
	Location    string    `bson:"location"`
	Type        string    `bson:"type"`
	Salary      string    `bson:"salary,omitempty"`
	Experience  string    `bson:"experience,omitempty"`
	URL         string    `bson:"url"`
	Source      string    `bson:"source"`
	Skills      []string  `bson:"skills,omitempty"`
	Embedding   []float32 `bson:"embedding,omitempty"`
	PostedDate  time.Time `bson:"posted_date"`
	ScrapedAt   time.Time `bson:"scraped_at"`
}

func fromDomainJob(j *domain.JobPosting) jobDoc {
	return jobDoc{
		ID:          j.ID,
		Title:       j.Title,
		Company:     j.Company,
		Description: j.Description,
		Location:    j.Location,
		Type:        string(j.Type),
		Salary:      j.Salary,
		Experience:  j.Experience,
		URL:         j.URL,
		Source:      j.Source,
		Skills:      j.Skills,
		Embedding:   j.Embedding,
		PostedDate:  j.PostedDate,
		ScrapedAt:   j.ScrapedAt,
	}
}

func (d *jobDoc) toDomain() domain.JobPosting {
	return domain.JobPosting{
		ID:          d.ID,
		Title:       d.Title,
		Company:     d.Company,
		Description: d.Description,
		Location:    d.Location,
		Type:        domain.EmploymentType(d.Type),
		Salary:      d.Salary,
		Experience:  d.Experience,
		URL:         d.URL,
		Source:      d.Source,
		Skills:      d.Skills,
		Embedding:   d.Embedding,
		PostedDate:  d.PostedDate,
		ScrapedAt:   d.ScrapedAt,
	}
}

// JobStore persists postings in the jobs collection.
type JobStore struct {
	coll *mongo.Collection
}

// NewJobStore creates a posting store on db.
func NewJobStore(db *mongo.Database) *JobStore {
	return &JobStore{coll: db.Collection(jobsCollection)}
}

// InsertJob stores a new posting.
func (s *JobStore) InsertJob(ctx context.Context, job *domain.JobPosting) error {
	if _, err := s.coll.InsertOne(ctx, fromDomainJob(job)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetJob retrieves a posting by ID.
func (s *JobStore) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	var doc jobDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	job := doc.toDomain()
	return &job, nil
}

// JobExists reports whether a posting exists with the URL or the
// (title, company) composite. The composite only participates when both
// fields are present: minimal-mode records carry neither, and matching on
// an empty composite would collapse every such record onto the first one
// stored.
func (s *JobStore) JobExists(ctx context.Context, url, title, company string) (bool, error) {
	err := s.coll.FindOne(ctx, existsFilter(url, title, company)).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}

// ListJobs returns postings matching the filter, paginated, newest first.
func (s *JobStore) ListJobs(ctx context.Context, filter domain.JobFilter, offset, limit int) ([]domain.JobPosting, error) {
	opts := options.Find().SetSort(bson.M{"posted_date": -1})
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeJobs(ctx, cursor)
}

// CountJobs returns the number of postings matching the filter.
func (s *JobStore) CountJobs(ctx context.Context, filter domain.JobFilter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// ListJobsWithEmbedding returns every posting carrying a vector.
func (s *JobStore) ListJobsWithEmbedding(ctx context.Context) ([]domain.JobPosting, error) {
	cursor, err := s.coll.Find(ctx, bson.M{"embedding": bson.M{"$exists": true}})
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeJobs(ctx, cursor)
}

// ListJobsMissingEmbedding returns up to limit postings without a vector.
func (s *JobStore) ListJobsMissingEmbedding(ctx context.Context, limit int) ([]domain.JobPosting, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, bson.M{"embedding": bson.M{"$exists": false}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeJobs(ctx, cursor)
}

// SetJobEmbedding backfills the embedding field.
func (s *JobStore) SetJobEmbedding(ctx context.Context, id string, embedding []float32) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"embedding": embedding}})
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteJobsBySource removes every posting with the given source tag.
func (s *JobStore) DeleteJobsBySource(ctx context.Context, source string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"source": source})
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	return res.DeletedCount, nil
}

// existsFilter builds the dedup existence query: URL match, plus the
// (title, company) composite when both fields are non-empty.
func existsFilter(url, title, company string) bson.M {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(company) == "" {
		return bson.M{"url": url}
	}
	return bson.M{"$or": bson.A{
		bson.M{"url": url},
		bson.M{
			"title":   exactInsensitive(title),
			"company": exactInsensitive(company),
		},
	}}
}

// buildFilter translates a domain filter into a Mongo query. Substring
// fields match case-insensitively; source matches exactly.
func buildFilter(filter domain.JobFilter) bson.M {
	query := bson.M{}
	if filter.Query != "" {
		contains := containsInsensitive(filter.Query)
		query["$or"] = bson.A{
			bson.M{"title": contains},
			bson.M{"company": contains},
			bson.M{"description": contains},
		}
	}
	if filter.Location != "" {
		query["location"] = containsInsensitive(filter.Location)
	}
	if filter.Type != "" {
		query["type"] = containsInsensitive(filter.Type)
	}
	if filter.Source != "" {
		query["source"] = filter.Source
	}
	return query
}

func containsInsensitive(v string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
}

func exactInsensitive(v string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(v) + "$", Options: "i"}
}

func decodeJobs(ctx context.Context, cursor *mongo.Cursor) ([]domain.JobPosting, error) {
	var out []domain.JobPosting
	for cursor.Next(ctx) {
		var doc jobDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}
