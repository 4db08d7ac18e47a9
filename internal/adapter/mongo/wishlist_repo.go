package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const wishlistCollectionName = "wishlists"

type WishlistMongoRepository struct {
	db *mongo.Database
}

func NewWishlistMongoRepository(client *mongo.Client, dbName string) *WishlistMongoRepository {
	return &WishlistMongoRepository{
		db: client.Database(dbName),
	}
}

type activityDocument struct {
	ID          string  `bson:"id"`
	Name        string  `bson:"name"`
	Cost        float64 `bson:"cost"`
	IsCompleted bool    `bson:"is_completed"`
}

type wishlistDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description,omitempty"`
	Status        string             `bson:"status"`
	Latitude      *float64           `bson:"latitude"`
	Longitude     *float64           `bson:"longitude"`
	GoogleMapsURL string             `bson:"google_maps_url,omitempty"`
	SourceType    string             `bson:"source_type"`
	Activities    []activityDocument `bson:"activities"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func toWishlistDocument(w *entity.Wishlist) (*wishlistDocument, error) {
	doc := &wishlistDocument{
		UserID:        w.OwnerID,
		Name:          w.Name,
		Description:   w.Description,
		Status:        string(w.Status),
		Latitude:      w.Latitude,
		Longitude:     w.Longitude,
		GoogleMapsURL: w.GoogleMapsURL,
		SourceType:    string(w.SourceType),
		Activities:    make([]activityDocument, 0, len(w.Activities)),
		CreatedAt:     w.CreatedAt,
	}
	for _, a := range w.Activities {
		doc.Activities = append(doc.Activities, activityDocument(a))
	}
	if w.ID != "" {
		objID, err := primitive.ObjectIDFromHex(w.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid wishlist ID format: %w", err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toWishlistEntity(doc *wishlistDocument) *entity.Wishlist {
	w := &entity.Wishlist{
		ID:            doc.ID.Hex(),
		OwnerID:       doc.UserID,
		Name:          doc.Name,
		Description:   doc.Description,
		Status:        entity.WishlistStatus(doc.Status),
		Latitude:      doc.Latitude,
		Longitude:     doc.Longitude,
		GoogleMapsURL: doc.GoogleMapsURL,
		SourceType:    entity.SourceType(doc.SourceType),
		Activities:    make([]entity.Activity, 0, len(doc.Activities)),
		CreatedAt:     doc.CreatedAt,
	}
	for _, a := range doc.Activities {
		w.Activities = append(w.Activities, entity.Activity(a))
	}
	return w
}

// ownerFilter builds the {_id, user_id} match used by every owner-scoped
// operation. A malformed id yields ErrNotFound, same as an unknown one.
func ownerFilter(id, ownerID string) (bson.M, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return bson.M{"_id": objID, "user_id": ownerID}, nil
}

func (r *WishlistMongoRepository) Create(ctx context.Context, wishlist *entity.Wishlist) (string, error) {
	doc, err := toWishlistDocument(wishlist)
	if err != nil {
		return "", err
	}

	res, err := r.db.Collection(wishlistCollectionName).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create wishlist in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	return insertedID.Hex(), nil
}

func (r *WishlistMongoRepository) GetByID(ctx context.Context, id string) (*entity.Wishlist, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objID})
}

func (r *WishlistMongoRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Wishlist, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, filter)
}

func (r *WishlistMongoRepository) findOne(ctx context.Context, filter bson.M) (*entity.Wishlist, error) {
	var doc wishlistDocument
	err := r.db.Collection(wishlistCollectionName).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wishlist from mongo: %w", err)
	}
	return toWishlistEntity(&doc), nil
}

func (r *WishlistMongoRepository) List(ctx context.Context) ([]*entity.Wishlist, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *WishlistMongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Wishlist, error) {
	return r.findMany(ctx, bson.M{"user_id": ownerID})
}

func (r *WishlistMongoRepository) findMany(ctx context.Context, filter bson.M) ([]*entity.Wishlist, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(wishlistCollectionName).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlists from mongo: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []wishlistDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist list from mongo: %w", err)
	}

	wishlists := make([]*entity.Wishlist, len(docs))
	for i := range docs {
		wishlists[i] = toWishlistEntity(&docs[i])
	}
	return wishlists, nil
}

func (r *WishlistMongoRepository) UpdateFields(ctx context.Context, id, ownerID string, patch *entity.WishlistPatch) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.GoogleMapsURL != nil {
		set["google_maps_url"] = *patch.GoogleMapsURL
	}
	if patch.SourceType != nil {
		set["source_type"] = string(*patch.SourceType)
	}
	if patch.ReplaceCoordinates {
		// Re-extraction overwrites both coordinates, possibly with null.
		set["latitude"] = patch.Latitude
		set["longitude"] = patch.Longitude
	} else {
		if patch.Latitude != nil {
			set["latitude"] = *patch.Latitude
		}
		if patch.Longitude != nil {
			set["longitude"] = *patch.Longitude
		}
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.db.Collection(wishlistCollectionName).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update wishlist in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishlistMongoRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.db.Collection(wishlistCollectionName).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist from mongo: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishlistMongoRepository) PushActivity(ctx context.Context, wishlistID, ownerID string, activity *entity.Activity) error {
	filter, err := ownerFilter(wishlistID, ownerID)
	if err != nil {
		return err
	}

	update := bson.M{"$push": bson.M{"activities": activityDocument(*activity)}}
	res, err := r.db.Collection(wishlistCollectionName).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to push activity in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishlistMongoRepository) UpdateActivity(ctx context.Context, wishlistID, ownerID, activityID string, patch *entity.ActivityPatch) error {
	filter, err := ownerFilter(wishlistID, ownerID)
	if err != nil {
		return err
	}
	filter["activities.id"] = activityID

	set := bson.M{}
	if patch.Name != nil {
		set["activities.$.name"] = *patch.Name
	}
	if patch.Cost != nil {
		set["activities.$.cost"] = *patch.Cost
	}
	if patch.IsCompleted != nil {
		set["activities.$.is_completed"] = *patch.IsCompleted
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.db.Collection(wishlistCollectionName).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update activity in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *WishlistMongoRepository) PullActivity(ctx context.Context, wishlistID, ownerID, activityID string) error {
	filter, err := ownerFilter(wishlistID, ownerID)
	if err != nil {
		return err
	}

	update := bson.M{"$pull": bson.M{"activities": bson.M{"id": activityID}}}
	res, err := r.db.Collection(wishlistCollectionName).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to pull activity in mongo: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	// The parent matched but nothing was pulled: the activity id is unknown.
	if res.ModifiedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
