package order

import (
	"context"
	"fmt"
	"time"

	"github.com/kapee-shop/api/internal/domain"
	"github.com/kapee-shop/api/internal/pkg/id"
)

// duplicateWindow defines how far back a batch submission looks for orders it
// would duplicate. Double-clicked checkouts land well inside it.
const duplicateWindow = 30 * time.Second

type Service interface {
	Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error)
	// CreateBatch places every order in the request, rejecting the whole
	// batch when any order duplicates one the user placed within the last
	// thirty seconds.
	CreateBatch(ctx context.Context, req *domain.BatchOrderRequest) ([]domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, req *domain.UpdateOrderRequest) (*domain.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
	Delete(ctx context.Context, orderID string) error
	Scan(ctx context.Context) ([]domain.Order, error)
}

type service struct {
	orders orderStore
}

type ServiceDeps struct {
	OrderRepo orderStore
}

func NewService(deps ServiceDeps) Service {
	return &service{orders: deps.OrderRepo}
}

func newOrder(req *domain.CreateOrderRequest, now time.Time) *domain.Order {
	return &domain.Order{
		OrderID:   id.New(),
		UserID:    req.UserID,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *service) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	o := newOrder(req, time.Now().UTC())
	if err := s.orders.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) CreateBatch(ctx context.Context, req *domain.BatchOrderRequest) ([]domain.Order, error) {
	now := time.Now().UTC()

	// Recent orders are checked per user so one user's retry cannot block
	// another's legitimate order.
	recentByUser := map[string][]domain.Order{}
	for _, item := range req.Orders {
		if item.UserID == "" {
			continue
		}
		if _, ok := recentByUser[item.UserID]; ok {
			continue
		}
		recent, err := s.orders.ListByUserSince(ctx, item.UserID, now.Add(-duplicateWindow))
		if err != nil {
			return nil, err
		}
		recentByUser[item.UserID] = recent
	}

	for _, item := range req.Orders {
		for _, prev := range recentByUser[item.UserID] {
			if prev.Product == item.Product && prev.Quantity == item.Quantity {
				return nil, fmt.Errorf("order for %q placed %s ago: %w",
					item.Product, now.Sub(prev.CreatedAt).Round(time.Second), domain.ErrConflict)
			}
		}
	}

	placed := make([]domain.Order, 0, len(req.Orders))
	for i := range req.Orders {
		o := newOrder(&req.Orders[i], now)
		if err := s.orders.Put(ctx, o); err != nil {
			return placed, err
		}
		placed = append(placed, *o)
	}
	return placed, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.Get(ctx, orderID)
}

func (s *service) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.Scan(ctx)
}

func (s *service) Update(ctx context.Context, orderID string, req *domain.UpdateOrderRequest) (*domain.Order, error) {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.orders.Update(ctx, orderID, fields); err != nil {
		return nil, err
	}
	return s.orders.Get(ctx, orderID)
}

func (s *service) Delete(ctx context.Context, orderID string) error {
	if _, err := s.orders.Get(ctx, orderID); err != nil {
		return err
	}
	return s.orders.Delete(ctx, orderID)
}
