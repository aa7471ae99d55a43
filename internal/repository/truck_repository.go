package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-service/internal/model"
)

const trucksCollection = "trucks"

type TruckStore interface {
	List(ctx context.Context) ([]model.Truck, error)
	GetByID(ctx context.Context, id string) (*model.Truck, error)
	Insert(ctx context.Context, truck *model.Truck) error
	Replace(ctx context.Context, truck *model.Truck) error
	Delete(ctx context.Context, id string) error
}

type TruckRepository struct {
	collection *mongo.Collection
}

func NewTruckRepository(database *mongo.Database) *TruckRepository {
	return &TruckRepository{collection: database.Collection(trucksCollection)}
}

func (r *TruckRepository) List(ctx context.Context) ([]model.Truck, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trucks []model.Truck
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *TruckRepository) GetByID(ctx context.Context, id string) (*model.Truck, error) {
	var truck model.Truck
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&truck)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &truck, nil
}

func (r *TruckRepository) Insert(ctx context.Context, truck *model.Truck) error {
	_, err := r.collection.InsertOne(ctx, truck)
	return err
}

func (r *TruckRepository) Replace(ctx context.Context, truck *model.Truck) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": truck.ID}, truck, options.Replace().SetUpsert(true))
	return err
}

func (r *TruckRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
