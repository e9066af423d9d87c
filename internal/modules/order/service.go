package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/gluto-backend/internal/apperr"
	"github.com/georgemunganga/gluto-backend/internal/validate"
	"github.com/georgemunganga/gluto-backend/internal/logger"
	"github.com/georgemunganga/gluto-backend/internal/modules/cart"
	"github.com/georgemunganga/gluto-backend/internal/modules/catalog"
)

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder validates the submission, merges its lines through a cart,
	// persists the order as pending and dispatches notifications.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// GetOrder retrieves an order by id.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListOrders returns orders newest first, optionally filtered by status.
	ListOrders(ctx context.Context, status string) ([]*Order, error)

	// UpdateStatus moves an order along the status state machine.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

// Products resolves the products referenced by an order; catalog.Service
// satisfies it.
type Products interface {
	GetProduct(ctx context.Context, id string, activeOnly bool) (*catalog.Product, error)
}

type service struct {
	repo     Repository
	products Products
	notifier Notifier
	placed   *prometheus.CounterVec
	now      func() time.Time
}

// NewService creates a new order service. placed may be nil.
func NewService(repo Repository, products Products, notifier Notifier, placed *prometheus.CounterVec) Service {
	return &service{
		repo:     repo,
		products: products,
		notifier: notifier,
		placed:   placed,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var c cart.Cart
	for i, item := range req.Items {
		p, err := s.products.GetProduct(ctx, item.ProductID, true)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				return nil, apperr.ValidationFields(map[string]string{
					fmt.Sprintf("items[%d].productId", i): "exists",
				})
			}
			return nil, err
		}
		name := strings.TrimSpace(item.ProductName)
		if name == "" {
			name = p.Name
		}
		price := p.Price
		if item.Price != nil {
			price = *item.Price
		}
		c.Add(cart.Product{ID: p.ID, Name: name, Price: decimal.NewFromFloat(price)}, item.Quantity)
	}

	lines := make([]Line, 0, c.Len())
	for _, l := range c.Lines() {
		lines = append(lines, Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price.InexactFloat64(),
		})
	}

	now := s.now()
	o := &Order{
		ID:              uuid.NewString(),
		OrderNumber:     generateOrderNumber(now),
		FullName:        strings.TrimSpace(req.FullName),
		Email:           strings.TrimSpace(req.Email),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		CompanyName:     strings.TrimSpace(req.CompanyName),
		PositionTitle:   strings.TrimSpace(req.PositionTitle),
		Address:         strings.TrimSpace(req.Address),
		InquiryPriority: Priority(req.InquiryPriority),
		Items:           lines,
		TotalAmount:     c.TotalPrice().InexactFloat64(),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// The number suffix is short; retry on the rare collision.
	for attempt := 1; ; attempt++ {
		err := s.repo.Create(ctx, o)
		if err == nil {
			break
		}
		if !apperr.Is(err, apperr.KindConflict) || attempt == maxNumberAttempts {
			return nil, err
		}
		o.OrderNumber = generateOrderNumber(now)
	}
	if s.placed != nil {
		s.placed.WithLabelValues(string(o.InquiryPriority)).Inc()
	}
	logger.FromContext(ctx).Info("order placed",
		"order", o.OrderNumber, "items", len(o.Items), "total", o.TotalAmount, "priority", o.InquiryPriority)

	s.notifier.OrderPlaced(o)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	st := Status(strings.ToLower(strings.TrimSpace(status)))
	if st != "" {
		if _, ok := validTransitions[st]; !ok {
			return nil, apperr.ValidationFields(map[string]string{"status": "oneof=pending processing completed cancelled"})
		}
	}
	return s.repo.List(ctx, st)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	newStatus := Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if _, ok := validTransitions[newStatus]; !ok {
		return nil, apperr.ValidationFields(map[string]string{"status": "oneof=pending processing completed cancelled"})
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	valid := false
	for _, allowed := range validTransitions[o.Status] {
		if allowed == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperr.InvalidTransition("cannot transition order from %s to %s", o.Status, newStatus)
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, o.Status, newStatus, now); err != nil {
		return nil, err
	}
	o.Status = newStatus
	o.UpdatedAt = now
	return o, nil
}

const maxNumberAttempts = 3

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXX
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
