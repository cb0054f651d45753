package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jacksleight/simple-commerce/internal/domain"
)

type mongoCustomerRepository struct {
	collection *mongo.Collection
}

func NewMongoCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{collection: db.Collection("customers")}
}

func (m *mongoCustomerRepository) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *mongoCustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.findOne(ctx, bson.M{"email": email})
}

func (m *mongoCustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	var customer domain.Customer

	err := m.collection.FindOne(ctx, filter).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return &customer, nil
}

func (m *mongoCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	now := time.Now()
	if customer.ID == "" {
		customer.ID = uuid.New().String()
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	filter := bson.M{"_id": customer.ID}
	update := bson.M{"$set": customer}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return nil
}
