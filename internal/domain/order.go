package domain

import "time"

type Order struct {
	OrderID   string    `json:"id" dynamodbav:"order_id"`
	UserID    string    `json:"user_id,omitempty" dynamodbav:"user_id"`
	Product   string    `json:"product" dynamodbav:"product"`
	Quantity  int       `json:"quantity" dynamodbav:"quantity"`
	Price     float64   `json:"price" dynamodbav:"price"`
	Status    string    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type CreateOrderRequest struct {
	UserID   string  `json:"user_id"`
	Product  string  `json:"product" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type BatchOrderRequest struct {
	Orders []CreateOrderRequest `json:"orders" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	Quantity *int     `json:"quantity" validate:"omitempty,gt=0"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Status   *string  `json:"status" validate:"omitempty,oneof=pending shipped delivered cancelled"`
}
