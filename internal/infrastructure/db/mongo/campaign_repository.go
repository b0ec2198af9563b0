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

const collectionCampaigns = "campaigns"

type CampaignRepository struct {
	col    *mongo.Collection
	logger zerolog.Logger
}

func NewCampaignRepository(db *mongo.Database, logger zerolog.Logger) *CampaignRepository {
	return &CampaignRepository{col: db.Collection(collectionCampaigns), logger: logger}
}

func campaignDocument(c *domain.Campaign) bson.M {
	return storageDoc(bson.M{
		"id":            c.ID,
		"title":         c.Title,
		"description":   optional(c.Description),
		"campaign_type": string(c.CampaignType),
		"status":        string(c.Status),
		"client_name":   c.ClientName,
		"budget":        optional(c.Budget),
		"start_date":    c.StartDate,
		"end_date":      c.EndDate,
		"assigned_team": c.AssignedTeam,
		"created_by":    c.CreatedBy,
		"created_at":    c.CreatedAt,
		"updated_at":    c.UpdatedAt,
	})
}

func (r *CampaignRepository) toCampaign(raw bson.M) *domain.Campaign {
	doc, unparsed := readDoc(r.logger, collectionCampaigns, raw)
	return &domain.Campaign{
		ID:                 getString(doc, "id"),
		Title:              getString(doc, "title"),
		Description:        getStringPtr(doc, "description"),
		CampaignType:       domain.CampaignType(getString(doc, "campaign_type")),
		Status:             domain.CampaignStatus(getString(doc, "status")),
		ClientName:         getString(doc, "client_name"),
		Budget:             getFloatPtr(doc, "budget"),
		StartDate:          getTimePtr(doc, "start_date"),
		EndDate:            getTimePtr(doc, "end_date"),
		AssignedTeam:       getStrings(doc, "assigned_team"),
		CreatedBy:          getString(doc, "created_by"),
		CreatedAt:          getTime(doc, "created_at"),
		UpdatedAt:          getTime(doc, "updated_at"),
		UnparsedTimestamps: unparsed,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := campaignDocument(c)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return r.toCampaign(doc), nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return r.toCampaign(raw), nil
}

// List returns at most ports.ListLimit campaigns.
func (r *CampaignRepository) List(ctx context.Context) ([]*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetLimit(ports.ListLimit))
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode campaigns: %w", err)
	}

	campaigns := make([]*domain.Campaign, 0, len(raws))
	for _, raw := range raws {
		campaigns = append(campaigns, r.toCampaign(raw))
	}
	return campaigns, nil
}

// replaceSet builds the $set document for a full replace. Identity and
// creation fields are never included.
func replaceSet(c *domain.Campaign) bson.M {
	set := bson.M{
		"title":         c.Title,
		"description":   optional(c.Description),
		"campaign_type": string(c.CampaignType),
		"client_name":   c.ClientName,
		"budget":        optional(c.Budget),
		"start_date":    c.StartDate,
		"end_date":      c.EndDate,
		"assigned_team": c.AssignedTeam,
		"updated_at":    c.UpdatedAt,
	}
	if c.Status != "" {
		set["status"] = string(c.Status)
	}
	return storageDoc(set)
}

func (r *CampaignRepository) Replace(ctx context.Context, id string, c *domain.Campaign) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var raw bson.M
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": replaceSet(c)}, opts).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("replace campaign: %w", err)
	}
	return r.toCampaign(raw), nil
}

// EnsureIndexes creates necessary indexes on the campaigns collection.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
