package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/jobboard/internal/core/domain"
)

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{
		col: db.Collection(collectionJobs),
		ids: newSequence(db, collectionJobs),
	}
}

type jobDocument struct {
	ID          int64     `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Salary      string    `bson:"salary,omitempty"`
	Location    string    `bson:"location,omitempty"`
	PostedBy    string    `bson:"posted_by"`
	PostedByID  int64     `bson:"posted_by_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d jobDocument) toDomain() *domain.Job {
	return &domain.Job{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Salary:      d.Salary,
		Location:    d.Location,
		PostedBy:    d.PostedBy,
		PostedByID:  d.PostedByID,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := jobDocument{
		ID:          id,
		Title:       job.Title,
		Description: job.Description,
		Salary:      job.Salary,
		Location:    job.Location,
		PostedBy:    job.PostedBy,
		PostedByID:  job.PostedByID,
		CreatedAt:   job.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a job by its numeric ID.
func (r *JobRepository) FindByID(ctx context.Context, id int64) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns all jobs in insertion order. IDs are issued monotonically, so
// sorting by _id preserves it.
func (r *JobRepository) List(ctx context.Context) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]*domain.Job, len(docs))
	for i, d := range docs {
		jobs[i] = d.toDomain()
	}
	return jobs, nil
}

// EnsureIndexes creates necessary indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "posted_by_id", Value: 1}},
	})
	return err
}
