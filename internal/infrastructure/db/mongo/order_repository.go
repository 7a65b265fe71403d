package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marketloop/storefront-api/internal/core/domain"
)

const ordersCollection = "orders"

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type mongoOrder struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	BuyerID   primitive.ObjectID   `bson:"buyer"`
	Products  []primitive.ObjectID `bson:"products"`
	Status    string               `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
}

// mongoOrderView is the decoded shape of the ListAll aggregation, with buyer
// and product documents joined in.
type mongoOrderView struct {
	ID        primitive.ObjectID `bson:"_id"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	Buyer     []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	} `bson:"buyer_doc"`
	Products []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Name  string             `bson:"name"`
		Price float64            `bson:"price"`
	} `bson:"product_docs"`
}

// UpdateStatus sets the status in one find-and-update round trip and returns
// the updated order. An unknown id yields (nil, nil).
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		// Malformed ids behave like unknown ones.
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mo mongoOrder
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order := &domain.Order{
		ID:        mo.ID.Hex(),
		Buyer:     domain.Buyer{ID: mo.BuyerID.Hex()},
		Status:    domain.OrderStatus(mo.Status),
		CreatedAt: mo.CreatedAt,
	}
	for _, p := range mo.Products {
		order.Products = append(order.Products, domain.OrderProduct{ID: p.Hex()})
	}
	return order, nil
}

// ListAll joins buyer and product documents and sorts newest first.
func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "buyer",
			"foreignField": "_id",
			"as":           "buyer_doc",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "products",
			"foreignField": "_id",
			"as":           "product_docs",
		}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	for cursor.Next(ctx) {
		var view mongoOrderView
		if err := cursor.Decode(&view); err != nil {
			return nil, fmt.Errorf("list orders: decode: %w", err)
		}

		order := &domain.Order{
			ID:        view.ID.Hex(),
			Status:    domain.OrderStatus(view.Status),
			CreatedAt: view.CreatedAt,
		}
		if len(view.Buyer) > 0 {
			order.Buyer = domain.Buyer{ID: view.Buyer[0].ID.Hex(), Name: view.Buyer[0].Name}
		}
		for _, p := range view.Products {
			order.Products = append(order.Products, domain.OrderProduct{
				ID:    p.ID.Hex(),
				Name:  p.Name,
				Price: p.Price,
			})
		}
		orders = append(orders, order)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list orders: cursor: %w", err)
	}
	return orders, nil
}

// EnsureIndexes creates the indexes the status and listing queries rely on.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
