// Package order implements the order engine: cart pricing with immutable
// per-item price snapshots, role-based visibility, and the status lifecycle
// with an auditable transition history.
package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mominahmadrao/SmartResturantSystem/internal/auth"
	"github.com/mominahmadrao/SmartResturantSystem/internal/menu"
)

// Single-restaurant deployment: every order carries the same pickup snapshot.
const (
	restaurantName    = "Smart Restaurant HQ"
	restaurantAddress = "123 Food Street, Downtown"
	restaurantLat     = 31.5204
	restaurantLng     = 74.3587

	defaultCustomerAddress = "Customer Location 123"
	defaultCustomerLat     = 31.53
	defaultCustomerLng     = 74.36
)

// riderShare is the fraction of the order total credited as rider_earning.
var riderShare = decimal.NewFromFloat(0.10)

// Catalog is the only dependency the engine has on the menu: price and
// availability resolution at creation time. *menu.PGRepo satisfies it.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*menu.Item, error)
}

// EventSink receives lifecycle events. May be nil; publishing is best-effort
// and never fails the request.
type EventSink interface {
	OrderCreated(ctx context.Context, o *Order) error
	StatusChanged(ctx context.Context, o *Order, old Status) error
}

type Engine struct {
	repo    Repository
	catalog Catalog
	events  EventSink
}

func NewEngine(repo Repository, catalog Catalog, events EventSink) *Engine {
	return &Engine{repo: repo, catalog: catalog, events: events}
}

// CreateOrder prices the cart and persists the order. This is the only place
// price computation happens: each line freezes the menu price as price_each,
// so later catalog changes never touch placed orders.
func (e *Engine) CreateOrder(ctx context.Context, actor auth.Identity, req CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	total := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	orderID := uuid.NewString()

	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for item %s", ErrValidation, line.ItemID)
		}
		mi, err := e.catalog.GetByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, menu.ErrNotFound) {
				return nil, fmt.Errorf("menu item %s: %w", line.ItemID, ErrNotFound)
			}
			return nil, err
		}
		if !mi.Available {
			return nil, fmt.Errorf("%w: item %q is not available", ErrValidation, mi.Name)
		}
		price, err := decimal.NewFromString(mi.Price)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("%w: item %q has an invalid price", ErrValidation, mi.Name)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, Item{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			ItemID:    mi.ID,
			Quantity:  line.Quantity,
			PriceEach: price.StringFixed(2),
		})
	}

	address := req.DeliveryAddress
	if address == "" {
		address = defaultCustomerAddress
	}

	o := &Order{
		ID:                orderID,
		CustomerID:        actor.UserID,
		Status:            StatusPending,
		TotalAmount:       total.StringFixed(2),
		RestaurantName:    restaurantName,
		RestaurantAddress: restaurantAddress,
		RestaurantLat:     restaurantLat,
		RestaurantLng:     restaurantLng,
		CustomerName:      actor.Name,
		CustomerAddress:   address,
		CustomerLat:       defaultCustomerLat,
		CustomerLng:       defaultCustomerLng,
		RiderEarning:      total.Mul(riderShare).Round(2).StringFixed(2),
		Version:           1,
		CreatedAt:         time.Now().UTC(),
	}
	if err := e.persist(ctx, o, items); err != nil {
		return nil, err
	}

	if e.events != nil {
		if err := e.events.OrderCreated(ctx, o); err != nil {
			log.Printf("[order] publish created order=%s: %v", o.OrderNumber, err)
		}
	}
	return o, nil
}

// persist assigns the order number and writes the order. The NNN suffix is
// the per-day sequence guarded by the order_number unique index: losing the
// race to a concurrent create regenerates the number and tries again.
func (e *Engine) persist(ctx context.Context, o *Order, items []Item) error {
	const attempts = 3
	var err error
	for i := 0; i < attempts; i++ {
		if o.OrderNumber, err = e.nextOrderNumber(ctx, i); err != nil {
			return err
		}
		err = e.repo.Create(ctx, o, items)
		if err == nil || !errors.Is(err, errDuplicateNumber) {
			return err
		}
	}
	return err
}

func (e *Engine) nextOrderNumber(ctx context.Context, bump int) (string, error) {
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	seq, err := e.repo.CountSince(ctx, dayStart)
	if err != nil {
		return "", fmt.Errorf("order sequence: %w", err)
	}
	return fmt.Sprintf("ORD_%s_%03d", now.Format("20060102"), seq+1+bump), nil
}

// visible is the role-dependent read predicate, applied on every single-order
// read and mirrored by the list queries.
func visible(actor auth.Identity, o *Order) bool {
	switch actor.Role {
	case auth.RoleAdmin:
		return true
	case auth.RoleRider:
		if o.AssignedRiderID != nil && *o.AssignedRiderID == actor.UserID {
			return true
		}
		return o.Status == StatusPending || o.Status == StatusReady
	case auth.RoleCustomer:
		return o.CustomerID == actor.UserID
	}
	return false
}

func (e *Engine) GetOrder(ctx context.Context, actor auth.Identity, id string) (*OrderWithItems, error) {
	o, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(actor, o) {
		return nil, ErrForbidden
	}
	items, err := e.repo.GetItemDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderWithItems{Order: *o, Items: items}, nil
}

func (e *Engine) ListOrders(ctx context.Context, actor auth.Identity, limit, offset int) ([]Order, error) {
	switch actor.Role {
	case auth.RoleAdmin:
		return e.repo.ListAll(ctx, limit, offset)
	case auth.RoleRider:
		return e.repo.ListForRider(ctx, actor.UserID, limit, offset)
	default:
		return e.repo.ListByCustomer(ctx, actor.UserID, limit, offset)
	}
}

// TransitionStatus moves the order along the lifecycle. Only admin and rider
// may transition; a rider claiming an order (→ assigned) becomes its assigned
// rider. Every successful transition appends exactly one history row.
func (e *Engine) TransitionStatus(ctx context.Context, actor auth.Identity, id, statusValue string) (*Order, error) {
	if actor.Role != auth.RoleAdmin && actor.Role != auth.RoleRider {
		return nil, ErrForbidden
	}
	next, ok := ParseStatus(statusValue)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, statusValue)
	}

	o, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}

	var riderID *string
	if next == StatusAssigned && actor.Role == auth.RoleRider {
		riderID = &actor.UserID
	}

	updated, err := e.repo.UpdateStatus(ctx, id, o.Version, next, riderID)
	if err != nil {
		return nil, err
	}

	if e.events != nil {
		if err := e.events.StatusChanged(ctx, updated, o.Status); err != nil {
			log.Printf("[order] publish status order=%s: %v", updated.OrderNumber, err)
		}
	}
	return updated, nil
}

func (e *Engine) ListHistory(ctx context.Context, actor auth.Identity, id string) ([]StatusChange, error) {
	o, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visible(actor, o) {
		return nil, ErrForbidden
	}
	return e.repo.History(ctx, id)
}
