package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/jobboard/internal/core/domain"
)

const applicantIndexName = "job_id_user_id"

// ApplicationRepository implements ports.ApplicationRepository using MongoDB.
type ApplicationRepository struct {
	col *mongo.Collection
	ids *sequence
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{
		col: db.Collection(collectionApplications),
		ids: newSequence(db, collectionApplications),
	}
}

type applicationDocument struct {
	ID        int64     `bson:"_id"`
	JobID     int64     `bson:"job_id"`
	UserID    int64     `bson:"user_id"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d applicationDocument) toDomain() *domain.Application {
	return &domain.Application{
		ID:        d.ID,
		JobID:     d.JobID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// Create inserts an application. A duplicate-key error can only come from the
// optional unique (job_id, user_id) index.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return nil, err
	}

	doc := applicationDocument{
		ID:        id,
		JobID:     app.JobID,
		UserID:    app.UserID,
		CreatedAt: app.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	var docs []applicationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	apps := make([]*domain.Application, len(docs))
	for i, d := range docs {
		apps[i] = d.toDomain()
	}
	return apps, nil
}

// EnsureIndexes creates the (job_id, user_id) index. When unique is set the
// index rejects repeat applications. Switching modes requires dropping the
// existing index first, since MongoDB refuses to redefine one in place.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName(applicantIndexName).SetUnique(unique),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
