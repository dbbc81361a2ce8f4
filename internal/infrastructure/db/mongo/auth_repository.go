package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/auth-service/internal/core/domain"
)

const usersCollection = "users"

type MongoAuthRepository struct {
	coll *mongo.Collection
}

func NewAuthRepository(db *mongo.Database) *MongoAuthRepository {
	return &MongoAuthRepository{coll: db.Collection(usersCollection)}
}

type mongoCartItem struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"qty"`
}

type mongoUser struct {
	ID        string          `bson:"_id"`
	Email     string          `bson:"email"`
	Password  string          `bson:"password"`
	FirstName string          `bson:"first_name"`
	LastName  string          `bson:"last_name"`
	Cart      []mongoCartItem `bson:"cart"`
	Wishlist  []string        `bson:"wishlist"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

func (r *MongoAuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *MongoAuthRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAuthRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoAuthRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique email index the store relies on.
func (r *MongoAuthRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Ping reports whether the backing database is reachable.
func (r *MongoAuthRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func toMongoUser(u *domain.User) mongoUser {
	cart := make([]mongoCartItem, 0, len(u.Cart))
	for _, it := range u.Cart {
		cart = append(cart, mongoCartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	wishlist := u.Wishlist
	if wishlist == nil {
		wishlist = []string{}
	}
	return mongoUser{
		ID:        u.ID,
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Cart:      cart,
		Wishlist:  wishlist,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (mu mongoUser) toDomain() *domain.User {
	cart := make([]domain.CartItem, 0, len(mu.Cart))
	for _, it := range mu.Cart {
		cart = append(cart, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	wishlist := append([]string{}, mu.Wishlist...)
	return &domain.User{
		ID:        mu.ID,
		Email:     mu.Email,
		Password:  mu.Password,
		FirstName: mu.FirstName,
		LastName:  mu.LastName,
		CreatedAt: mu.CreatedAt.UTC(),
		UpdatedAt: mu.UpdatedAt.UTC(),
		Cart:      cart,
		Wishlist:  wishlist,
	}
}
