package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-admin-service/internal/model"
)

const auditsCollection = "location_seeding_audits"

type AuditStore interface {
	GetByID(ctx context.Context, id string) (*model.SeedingAudit, error)
	Insert(ctx context.Context, audit *model.SeedingAudit) error
}

type AuditRepository struct {
	collection *mongo.Collection
}

func NewAuditRepository(database *mongo.Database) *AuditRepository {
	return &AuditRepository{collection: database.Collection(auditsCollection)}
}

func (r *AuditRepository) GetByID(ctx context.Context, id string) (*model.SeedingAudit, error) {
	var audit model.SeedingAudit
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&audit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &audit, nil
}

func (r *AuditRepository) Insert(ctx context.Context, audit *model.SeedingAudit) error {
	_, err := r.collection.InsertOne(ctx, audit)
	return err
}
