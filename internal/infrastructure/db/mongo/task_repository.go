package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/demandhub/consultancy-api/internal/core/domain"
	"github.com/demandhub/consultancy-api/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

func NewTaskRepository(db *mongo.Database, logger zerolog.Logger) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks), logger: logger}
}

// taskDocument builds the stored form of t. A nil assignee is omitted rather
// than stored as null, matching what UnassignUser leaves behind.
func taskDocument(t *domain.Task) bson.M {
	doc := bson.M{
		"id":              t.ID,
		"title":           t.Title,
		"description":     optional(t.Description),
		"campaign_id":     t.CampaignID,
		"status":          string(t.Status),
		"priority":        string(t.Priority),
		"due_date":        t.DueDate,
		"estimated_hours": optional(t.EstimatedHours),
		"actual_hours":    optional(t.ActualHours),
		"dependencies":    t.Dependencies,
		"created_by":      t.CreatedBy,
		"created_at":      t.CreatedAt,
		"updated_at":      t.UpdatedAt,
	}
	if t.AssigneeID != nil {
		doc["assignee_id"] = *t.AssigneeID
	}
	return storageDoc(doc)
}

func (r *TaskRepository) toTask(raw bson.M) *domain.Task {
	doc, unparsed := readDoc(r.logger, collectionTasks, raw)
	return &domain.Task{
		ID:                 getString(doc, "id"),
		Title:              getString(doc, "title"),
		Description:        getStringPtr(doc, "description"),
		CampaignID:         getString(doc, "campaign_id"),
		AssigneeID:         getStringPtr(doc, "assignee_id"),
		Status:             domain.TaskStatus(getString(doc, "status")),
		Priority:           domain.TaskPriority(getString(doc, "priority")),
		DueDate:            getTimePtr(doc, "due_date"),
		EstimatedHours:     getFloatPtr(doc, "estimated_hours"),
		ActualHours:        getFloatPtr(doc, "actual_hours"),
		Dependencies:       getStrings(doc, "dependencies"),
		CreatedBy:          getString(doc, "created_by"),
		CreatedAt:          getTime(doc, "created_at"),
		UpdatedAt:          getTime(doc, "updated_at"),
		UnparsedTimestamps: unparsed,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := taskDocument(t)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.toTask(doc), nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return r.toTask(raw), nil
}

// List returns at most ports.ListLimit tasks, optionally scoped to a campaign.
func (r *TaskRepository) List(ctx context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CampaignID != "" {
		query["campaign_id"] = filter.CampaignID
	}

	cursor, err := r.col.Find(ctx, query, options.Find().SetLimit(ports.ListLimit))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(raws))
	for _, raw := range raws {
		tasks = append(tasks, r.toTask(raw))
	}
	return tasks, nil
}

// patchSet builds the $set document for a partial update: only non-nil
// fields of p plus updated_at.
func patchSet(p domain.TaskPatch, at time.Time) bson.M {
	set := bson.M{"updated_at": at}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.AssigneeID != nil {
		set["assignee_id"] = *p.AssigneeID
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Priority != nil {
		set["priority"] = string(*p.Priority)
	}
	if p.DueDate != nil {
		set["due_date"] = *p.DueDate
	}
	if p.EstimatedHours != nil {
		set["estimated_hours"] = *p.EstimatedHours
	}
	if p.ActualHours != nil {
		set["actual_hours"] = *p.ActualHours
	}
	return storageDoc(set)
}

func (r *TaskRepository) Update(ctx context.Context, id string, p domain.TaskPatch, at time.Time) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var raw bson.M
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": patchSet(p, at)}, opts).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return r.toTask(raw), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// UnassignUser removes assignee_id from every task assigned to userID.
func (r *TaskRepository) UnassignUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"assignee_id": userID},
		bson.M{"$unset": bson.M{"assignee_id": ""}},
	)
	if err != nil {
		return 0, fmt.Errorf("unassign tasks: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "campaign_id", Value: 1}}},
		{Keys: bson.D{{Key: "assignee_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "due_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
