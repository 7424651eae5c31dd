package teacherRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"horarios/models"
)

// MongoTeacherRepo implements TeacherRepository using MongoDB.
type MongoTeacherRepo struct {
	coll *mongo.Collection
}

// NewMongoTeacherRepo returns a repository over the "profesores" collection of db.
// The repository is usable even when the index could not be created; the
// error is returned so the caller can report it.
func NewMongoTeacherRepo(db *mongo.Database) (*MongoTeacherRepo, error) {
	repo := &MongoTeacherRepo{coll: db.Collection("profesores")}
	return repo, repo.ensureIndexes()
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes keeps one profile per NUE.
func (r *MongoTeacherRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "nue", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert replaces the stored fields of the profile with the submitted ones.
func (r *MongoTeacherRepo) Upsert(ctx context.Context, id string, raw []byte) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	doc, err := profileDocument(id, raw)
	if err != nil {
		return err
	}

	filter := bson.M{"nue": id}
	update := bson.M{"$set": doc}
	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert teacher %s: %w", id, err)
	}
	return nil
}

// ListCompleted returns nue, nombres and apellidos of every stored profile.
func (r *MongoTeacherRepo) ListCompleted(ctx context.Context) ([]models.TeacherName, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"_id": 0, "nue": 1, "nombres": 1, "apellidos": 1}).
		SetSort(bson.D{{Key: "apellidos", Value: 1}, {Key: "nombres", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve teachers: %w", err)
	}
	defer cursor.Close(ctx)

	names := []models.TeacherName{}
	if err := cursor.All(ctx, &names); err != nil {
		return nil, fmt.Errorf("failed to decode teachers: %w", err)
	}
	return names, nil
}

func (r *MongoTeacherRepo) Ping(ctx context.Context) error {
	ctx, cancel := newContext(ctx, 2*time.Second)
	defer cancel()
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

// profileDocument decodes the raw JSON body keeping field order, forces the
// normalised nue and stamps the update time.
func profileDocument(id string, raw []byte) (bson.D, error) {
	var doc bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}

	out := make(bson.D, 0, len(doc)+2)
	out = append(out, bson.E{Key: "nue", Value: id})
	for _, e := range doc {
		if e.Key == "nue" || e.Key == "_id" || e.Key == "updatedAt" {
			continue
		}
		out = append(out, e)
	}
	out = append(out, bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	return out, nil
}
