package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/demandhub/consultancy-api/internal/core/domain"
)

// StatsRepository runs the dashboard count queries directly against the
// collections.
type StatsRepository struct {
	users     *mongo.Collection
	campaigns *mongo.Collection
	tasks     *mongo.Collection
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		users:     db.Collection(collectionUsers),
		campaigns: db.Collection(collectionCampaigns),
		tasks:     db.Collection(collectionTasks),
	}
}

func (r *StatsRepository) CountCampaignsByStatus(ctx context.Context, status domain.CampaignStatus) (int64, error) {
	return count(ctx, r.campaigns, bson.M{"status": string(status)})
}

func (r *StatsRepository) CountTasksByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	return count(ctx, r.tasks, bson.M{"status": string(status)})
}

// CountOverdueTasks compares due_date as a string. Only string-typed values
// take part in $lt, so tasks without a due date are never counted.
func (r *StatsRepository) CountOverdueTasks(ctx context.Context, now time.Time) (int64, error) {
	return count(ctx, r.tasks, overdueFilter(now))
}

func (r *StatsRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	return count(ctx, r.users, bson.M{"is_active": true})
}

func overdueFilter(now time.Time) bson.M {
	return bson.M{
		"due_date": bson.M{"$lt": FormatTimestamp(now)},
		"status":   bson.M{"$ne": string(domain.TaskCompleted)},
	}
}

func count(ctx context.Context, col *mongo.Collection, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}
	return n, nil
}
