package mongo

import (
	"context"
	"errors"
	"log"

	"storefront-service/internal/domain"
	mongoinfra "storefront-service/internal/infra/mongo"
	"storefront-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type miniStoreRepo struct {
	coll *mongo.Collection
}

func NewMiniStoreRepository(db *mongo.Database) repository.MiniStoreRepository {
	return &miniStoreRepo{coll: db.Collection(mongoinfra.MiniStoresCollection)}
}

func (r *miniStoreRepo) ExistsSlug(ctx context.Context, slug string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *miniStoreRepo) Create(ctx context.Context, store *domain.MiniStore) error {
	res, err := r.coll.InsertOne(ctx, toMiniStoreDoc(store))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		log.Printf("MiniStore insert error: %v", err)
		return err
	}
	id, err := insertedID(res)
	if err != nil {
		return err
	}
	store.ID = id
	return nil
}

func (r *miniStoreRepo) ListActive(ctx context.Context, limit int) ([]domain.MiniStore, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"products": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		log.Printf("MiniStore list error: %v", err)
		return nil, err
	}
	var docs []miniStoreDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.MiniStore, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *miniStoreRepo) FindActiveBySlug(ctx context.Context, slug string) (*domain.MiniStore, error) {
	var d miniStoreDoc
	err := r.coll.FindOne(ctx, bson.M{"slug": slug, "isActive": true}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	s := d.toDomain()
	return &s, nil
}

func (r *miniStoreRepo) Toggle(ctx context.Context, id string) (*domain.MiniStore, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	flip := mongo.Pipeline{{{Key: "$set", Value: bson.D{{Key: "isActive", Value: bson.D{{Key: "$not", Value: bson.A{"$isActive"}}}}}}}}
	var d miniStoreDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, flip,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Printf("MiniStore toggle error: %v", err)
		return nil, err
	}
	s := d.toDomain()
	return &s, nil
}

func (r *miniStoreRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		log.Printf("MiniStore delete error: %v", err)
		return false, err
	}
	return res.DeletedCount == 1, nil
}
