package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-service/internal/domain"
	mongoinfra "storefront-service/internal/infra/mongo"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderRepo struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepo{coll: db.Collection(mongoinfra.OrdersCollection)}
}

func (r *orderRepo) Save(ctx context.Context, order *domain.Order) error {
	res, err := r.coll.InsertOne(ctx, toOrderDoc(order))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		log.Printf("Order insert error: %v", err)
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	order.ID = id
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *orderRepo) FindByProviderRef(ctx context.Context, method domain.PaymentMethod, ref string) (*domain.Order, error) {
	return r.findOne(ctx, bson.M{"paymentMethod": string(method), "providerRef": ref})
}

func (r *orderRepo) findOne(ctx context.Context, filter bson.M) (*domain.Order, error) {
	var d orderDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Printf("Order find error: %v", err)
		return nil, err
	}
	o := d.toDomain()
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *orderRepo) find(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		log.Printf("Order list error: %v", err)
		return nil, err
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *orderRepo) MarkPaid(ctx context.Context, method domain.PaymentMethod, ref, paymentRef string, at time.Time) (bool, error) {
	filter := bson.M{
		"paymentMethod": string(method),
		"providerRef":   ref,
		"status":        bson.M{"$in": []string{string(domain.StatusPending), string(domain.StatusInitiated)}},
	}
	set := bson.M{"status": string(domain.StatusPaid), "paidAt": at, "updatedAt": at}
	if paymentRef != "" {
		set["paymentRef"] = paymentRef
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		log.Printf("Order mark paid error: %v", err)
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, to domain.OrderStatus, from []domain.OrderStatus) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	states := make([]string, 0, len(from))
	for _, s := range from {
		states = append(states, string(s))
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$in": states}},
		bson.M{"$set": bson.M{"status": string(to), "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Printf("Order status update error: %v", err)
		return false, err
	}
	return res.MatchedCount == 1, nil
}
