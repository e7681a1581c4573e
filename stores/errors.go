package stores

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock for requested quantity")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrItemNotFound      = errors.New("catalog item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrInvalidPickupTime = errors.New("pickup time is not an offered slot")
)
