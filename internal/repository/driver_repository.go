package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-service/internal/model"
)

const driversCollection = "drivers"

type DriverStore interface {
	List(ctx context.Context) ([]model.Driver, error)
	GetByID(ctx context.Context, id string) (*model.Driver, error)
	Insert(ctx context.Context, driver *model.Driver) error
	Replace(ctx context.Context, driver *model.Driver) error
	Delete(ctx context.Context, id string) error
}

type DriverRepository struct {
	collection *mongo.Collection
}

func NewDriverRepository(database *mongo.Database) *DriverRepository {
	return &DriverRepository{collection: database.Collection(driversCollection)}
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var drivers []model.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *DriverRepository) GetByID(ctx context.Context, id string) (*model.Driver, error) {
	var driver model.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) Insert(ctx context.Context, driver *model.Driver) error {
	_, err := r.collection.InsertOne(ctx, driver)
	return err
}

func (r *DriverRepository) Replace(ctx context.Context, driver *model.Driver) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": driver.ID}, driver, options.Replace().SetUpsert(true))
	return err
}

func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
