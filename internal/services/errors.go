package services

import "storefront-service/internal/domain"

var (
	ErrOrderNotFound       = domain.NotFound("Order not found")
	ErrStoreNotFound       = domain.NotFound("Store not found")
	ErrProductNotFound     = domain.NotFound("Product not found")
	ErrUserNotFound        = domain.NotFound("User doesn't exist")
	ErrInvalidSignature    = domain.Rejected("Invalid signature")
	ErrPaymentNotCompleted = domain.Rejected("Payment not completed")
	ErrInvalidCredentials  = domain.Unauthorized("Invalid credentials")
	ErrSlugTaken           = domain.Conflict("Slug already in use")
	ErrEmailTaken          = domain.Conflict("User already exists")
	ErrEmptyCart           = domain.BadInput("Cart is empty")
)
