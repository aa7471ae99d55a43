package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fleet-admin-service/internal/model"
)

// ErrNoDocument is returned by point reads and deletes that match nothing.
var ErrNoDocument = errors.New("document not found")

const locationsCollection = "locations"

// LocationStore is the persistence surface the location flows depend on.
type LocationStore interface {
	List(ctx context.Context, filter LocationListFilter) ([]model.Location, error)
	GetByID(ctx context.Context, id string) (*model.Location, error)
	FindByAirportAndName(ctx context.Context, airport model.Airport, name string) (*model.Location, error)
	Insert(ctx context.Context, loc *model.Location) error
	Replace(ctx context.Context, loc *model.Location) error
	Delete(ctx context.Context, id string) error
}

type LocationListFilter struct {
	Airport *model.Airport
	Type    *model.LocationType
}

// LocationRepository implements LocationStore on a Mongo collection.
type LocationRepository struct {
	collection *mongo.Collection
}

func NewLocationRepository(database *mongo.Database) *LocationRepository {
	return &LocationRepository{collection: database.Collection(locationsCollection)}
}

func (r *LocationRepository) List(ctx context.Context, filter LocationListFilter) ([]model.Location, error) {
	query := bson.M{}
	if filter.Airport != nil {
		query["airport"] = *filter.Airport
	}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locations []model.Location
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id string) (*model.Location, error) {
	var loc model.Location
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&loc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	return &loc, nil
}

// FindByAirportAndName resolves the seeding unique key. A miss returns
// (nil, nil) rather than an error.
func (r *LocationRepository) FindByAirportAndName(ctx context.Context, airport model.Airport, name string) (*model.Location, error) {
	var loc model.Location
	err := r.collection.FindOne(ctx, bson.M{"airport": airport, "name": name}).Decode(&loc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) Insert(ctx context.Context, loc *model.Location) error {
	_, err := r.collection.InsertOne(ctx, loc)
	return err
}

// Replace rewrites the whole document, creating it when absent.
func (r *LocationRepository) Replace(ctx context.Context, loc *model.Location) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": loc.ID}, loc, options.Replace().SetUpsert(true))
	return err
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}
