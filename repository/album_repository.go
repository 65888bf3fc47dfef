package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/annazecevic/catalog-service/domain"
	"github.com/annazecevic/catalog-service/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AlbumRepository interface {
	FindAll(ctx context.Context, limit, offset int64) ([]*domain.Album, error)
	Search(ctx context.Context, filter domain.AlbumFilter) ([]*domain.Album, error)
	Insert(ctx context.Context, album *domain.Album) (*domain.Album, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*domain.Album, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

type albumRepository struct {
	collection *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database, collectionName string) AlbumRepository {
	collection := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "artist", Value: 1}}},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Warn(logger.EventDBError, "Failed to create indexes for albums", logger.Fields("error", err.Error()))
	}

	return &albumRepository{collection: collection}
}

func (r *albumRepository) FindAll(ctx context.Context, limit, offset int64) ([]*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}

	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Error(logger.EventDBError, "Error fetching albums", logger.Fields("error", err.Error()))
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.Album{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *albumRepository) Search(ctx context.Context, filter domain.AlbumFilter) ([]*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := r.collection.Find(ctx, buildSearchFilter(filter))
	if err != nil {
		logger.Error(logger.EventDBError, "Error searching albums", logger.Fields("error", err.Error()))
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*domain.Album{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *albumRepository) Insert(ctx context.Context, album *domain.Album) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, album)
	if err != nil {
		logger.Error(logger.EventDBError, "Error inserting album", logger.Fields(
			"title", album.Title,
			"error", err.Error(),
		))
		return nil, err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		album.ID = oid
	}
	return album, nil
}

func (r *albumRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Album
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		logger.Error(logger.EventDBError, "Error updating album", logger.Fields(
			"id", id.Hex(),
			"error", err.Error(),
		))
		return nil, err
	}
	return &updated, nil
}

func (r *albumRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Error(logger.EventDBError, "Error deleting album", logger.Fields(
			"id", id.Hex(),
			"error", err.Error(),
		))
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// buildSearchFilter translates a typed filter into a Mongo query document.
// Text fields become case-insensitive substring matches, everything else an
// exact match; set fields are implicitly AND-combined by Mongo.
func buildSearchFilter(f domain.AlbumFilter) bson.M {
	query := bson.M{}

	if f.ID != nil {
		query["_id"] = *f.ID
	}
	if f.Title != nil {
		query["title"] = containsPattern(*f.Title)
	}
	if f.Artist != nil {
		query["artist"] = containsPattern(*f.Artist)
	}
	if f.Genre != nil {
		query["genre"] = containsPattern(*f.Genre)
	}
	if f.CountryOfOrigin != nil {
		query["country_of_origin"] = containsPattern(*f.CountryOfOrigin)
	}
	if f.ReleaseDate != nil {
		query["release_date"] = *f.ReleaseDate
	}
	if f.Duration != nil {
		query["duration"] = *f.Duration
	}
	if f.Rating != nil {
		query["rating"] = *f.Rating
	}

	return query
}

func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}
