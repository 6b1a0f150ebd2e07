package mongo

import (
	"errors"
	"time"

	"storefront-service/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errNoInsertedID = errors.New("inserted document has no ObjectID")

// insertedID returns the hex id the driver assigned on insert.
func insertedID(res *mongo.InsertOneResult) (string, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errNoInsertedID
	}
	return oid.Hex(), nil
}

type lineItemDoc struct {
	ProductID string `bson:"productId"`
	Name      string `bson:"name"`
	Size      string `bson:"size,omitempty"`
	Quantity  int64  `bson:"quantity"`
	UnitPrice int64  `bson:"unitPrice"`
}

type addressDoc struct {
	FirstName string `bson:"firstName,omitempty"`
	LastName  string `bson:"lastName,omitempty"`
	Email     string `bson:"email,omitempty"`
	Street    string `bson:"street,omitempty"`
	City      string `bson:"city,omitempty"`
	State     string `bson:"state,omitempty"`
	Zip       string `bson:"zipcode,omitempty"`
	Country   string `bson:"country,omitempty"`
	Phone     string `bson:"phone,omitempty"`
}

type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"userId"`
	Items         []lineItemDoc      `bson:"items"`
	Amount        int64              `bson:"amount"`
	Currency      string             `bson:"currency"`
	Address       addressDoc         `bson:"address"`
	PaymentMethod string             `bson:"paymentMethod"`
	Status        string             `bson:"status"`
	ProviderRef   string             `bson:"providerRef,omitempty"`
	PaymentRef    string             `bson:"paymentRef,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty"`
}

func toOrderDoc(o *domain.Order) orderDoc {
	items := make([]lineItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, lineItemDoc(it))
	}
	return orderDoc{
		UserID:        o.UserID,
		Items:         items,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Address:       addressDoc(o.Address),
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		ProviderRef:   o.ProviderRef,
		PaymentRef:    o.PaymentRef,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		PaidAt:        o.PaidAt,
	}
}

func (d orderDoc) toDomain() domain.Order {
	items := make([]domain.LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.LineItem(it))
	}
	return domain.Order{
		ID:            d.ID.Hex(),
		UserID:        d.UserID,
		Items:         items,
		Amount:        d.Amount,
		Currency:      d.Currency,
		Address:       domain.Address(d.Address),
		PaymentMethod: domain.PaymentMethod(d.PaymentMethod),
		Status:        domain.OrderStatus(d.Status),
		ProviderRef:   d.ProviderRef,
		PaymentRef:    d.PaymentRef,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		PaidAt:        d.PaidAt,
	}
}

type miniStoreDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Slug        string             `bson:"slug"`
	DisplayName string             `bson:"displayName"`
	Bio         string             `bson:"bio,omitempty"`
	AvatarURL   string             `bson:"avatarUrl,omitempty"`
	BannerURL   string             `bson:"bannerUrl,omitempty"`
	IsActive    bool               `bson:"isActive"`
	ProductIDs  []string           `bson:"products,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func toMiniStoreDoc(s *domain.MiniStore) miniStoreDoc {
	return miniStoreDoc{
		Slug:        s.Slug,
		DisplayName: s.DisplayName,
		Bio:         s.Bio,
		AvatarURL:   s.AvatarURL,
		BannerURL:   s.BannerURL,
		IsActive:    s.IsActive,
		ProductIDs:  s.ProductIDs,
		CreatedAt:   s.CreatedAt,
	}
}

func (d miniStoreDoc) toDomain() domain.MiniStore {
	return domain.MiniStore{
		ID:          d.ID.Hex(),
		Slug:        d.Slug,
		DisplayName: d.DisplayName,
		Bio:         d.Bio,
		AvatarURL:   d.AvatarURL,
		BannerURL:   d.BannerURL,
		IsActive:    d.IsActive,
		ProductIDs:  d.ProductIDs,
		CreatedAt:   d.CreatedAt,
	}
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       int64              `bson:"price"`
	Category    string             `bson:"category"`
	SubCategory string             `bson:"subCategory,omitempty"`
	Sizes       []string           `bson:"sizes"`
	Images      []string           `bson:"images,omitempty"`
	Bestseller  bool               `bson:"bestseller"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func toProductDoc(p *domain.Product) productDoc {
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		SubCategory: p.SubCategory,
		Sizes:       p.Sizes,
		Images:      p.Images,
		Bestseller:  p.Bestseller,
		CreatedAt:   p.CreatedAt,
	}
}

func (d productDoc) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		SubCategory: d.SubCategory,
		Sizes:       d.Sizes,
		Images:      d.Images,
		Bestseller:  d.Bestseller,
		CreatedAt:   d.CreatedAt,
	}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

// objectIDs converts hex ids, skipping malformed ones.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
