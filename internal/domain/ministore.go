package domain

import "time"

type MiniStore struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	BannerURL   string    `json:"bannerUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	ProductIDs  []string  `json:"productIds,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MiniStoreDetail is a store with its products resolved, served on the public store page.
type MiniStoreDetail struct {
	MiniStore
	Products []Product `json:"products"`
}
