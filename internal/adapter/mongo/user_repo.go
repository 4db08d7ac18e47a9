package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ammarmusa/travel-app-backend/internal/entity"
	"github.com/ammarmusa/travel-app-backend/internal/platform/logger"
	"github.com/ammarmusa/travel-app-backend/internal/port/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const userCollectionName = "users"

type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FullName       string             `bson:"full_name"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashed_password"`
	Role           string             `bson:"role"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func toUserEntity(doc *userDocument) *entity.User {
	return &entity.User{
		ID:             doc.ID.Hex(),
		FullName:       doc.FullName,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Role:           doc.Role,
		CreatedAt:      doc.CreatedAt,
	}
}

type UserMongoRepository struct {
	db     *mongo.Database
	logger *logger.Logger
}

func NewUserMongoRepository(client *mongo.Client, dbName string, log *logger.Logger) *UserMongoRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := client.Database(dbName)

	// Ensure the unique email index (idempotent operation).
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(userCollectionName).Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("Failed to create indexes for users collection (may already exist)", zap.Error(err))
	}

	return &UserMongoRepository{
		db:     db,
		logger: log.Named("UserRepository"),
	}
}

func (r *UserMongoRepository) Create(ctx context.Context, user *entity.User, password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Error("Failed to hash password during user creation", zap.String("email", user.Email), zap.Error(err))
		return "", err
	}

	doc := &userDocument{
		FullName:       user.FullName,
		Email:          user.Email,
		HashedPassword: string(hashedPassword),
		Role:           user.Role,
		CreatedAt:      user.CreatedAt,
	}

	res, err := r.db.Collection(userCollectionName).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicateEmail
		}
		return "", fmt.Errorf("failed to create user in mongo: %w", err)
	}

	insertedID, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("failed to convert inserted_id to ObjectID")
	}
	r.logger.Info("User created", zap.String("email", user.Email))
	return insertedID.Hex(), nil
}

func (r *UserMongoRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var doc userDocument
	err := r.db.Collection(userCollectionName).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}

	var doc userDocument
	err = r.db.Collection(userCollectionName).FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id from mongo: %w", err)
	}
	return toUserEntity(&doc), nil
}

func (r *UserMongoRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.db.Collection(userCollectionName).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users in mongo: %w", err)
	}
	return count, nil
}
