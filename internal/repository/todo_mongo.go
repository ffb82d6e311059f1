package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todos-be/internal/entities"
)

// todoDoc is the MongoDB shape of a todo record.
type todoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Task        string             `bson:"task"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	UserID      string             `bson:"user_id"`
	Tags        []string           `bson:"tags"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d *todoDoc) toEntity() *entities.Todo {
	return &entities.Todo{
		ID:          d.ID.Hex(),
		Task:        d.Task,
		Description: d.Description,
		Completed:   d.Completed,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		UserID:      d.UserID,
		Tags:        d.Tags,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type todoMongoRepository struct {
	coll *mongo.Collection
}

// NewMongoTodoRepository creates a todo repository backed by the given
// database and ensures the owner/recency index exists.
func NewMongoTodoRepository(ctx context.Context, db *mongo.Database) (TodoRepository, error) {
	coll := db.Collection("todos")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure todos index: %w", err)
	}

	return &todoMongoRepository{coll: coll}, nil
}

func (r *todoMongoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	now := time.Now().UTC()
	if todo.CreatedAt.IsZero() {
		todo.CreatedAt = now
	}
	todo.UpdatedAt = now
	if todo.Tags == nil {
		todo.Tags = []string{}
	}

	doc := todoDoc{
		Task:        todo.Task,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		DueDate:     todo.DueDate,
		UserID:      todo.UserID,
		Tags:        todo.Tags,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	todo.ID = oid.Hex()
	return nil
}

func (r *todoMongoRepository) FindByID(ctx context.Context, id string) (*entities.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc todoDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	return doc.toEntity(), nil
}

func mongoFilter(filter TodoFilter) bson.M {
	query := bson.M{"user_id": filter.UserID}
	if filter.Completed != nil {
		query["completed"] = *filter.Completed
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag // matches array membership
	}
	return query
}

func (r *todoMongoRepository) List(ctx context.Context, filter TodoFilter) ([]*entities.Todo, int, error) {
	query := mongoFilter(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count todos: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list todos: %w", err)
	}
	defer cursor.Close(ctx)

	var todos []*entities.Todo
	for cursor.Next(ctx) {
		var doc todoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode todo: %w", err)
		}
		todos = append(todos, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return todos, int(total), nil
}

func (r *todoMongoRepository) Update(ctx context.Context, todo *entities.Todo) error {
	oid, err := primitive.ObjectIDFromHex(todo.ID)
	if err != nil {
		return ErrNotFound
	}
	todo.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"task":        todo.Task,
		"description": todo.Description,
		"completed":   todo.Completed,
		"priority":    todo.Priority,
		"due_date":    todo.DueDate,
		"tags":        todo.Tags,
		"updated_at":  todo.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *todoMongoRepository) DeleteByUserID(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos for user: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *todoMongoRepository) Stats(ctx context.Context, userID string) (*entities.TodoStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"completed": "$completed",
				"priority":  "$priority",
			},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate todo stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &entities.TodoStats{}
	for cursor.Next(ctx) {
		var group struct {
			ID struct {
				Completed bool   `bson:"completed"`
				Priority  string `bson:"priority"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, fmt.Errorf("failed to decode todo stats: %w", err)
		}
		accumulateStats(stats, group.ID.Completed, group.ID.Priority, group.Count)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}
