package order

import "time"

type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	CustomerID  string `json:"customer_id"`
	Status      Status `json:"status"`
	// NUMERIC -> string; computed once at creation, never recalculated
	TotalAmount     string  `json:"total_amount"`
	AssignedRiderID *string `json:"assigned_rider_id,omitempty"`

	RestaurantName    string  `json:"restaurant_name"`
	RestaurantAddress string  `json:"restaurant_address"`
	RestaurantLat     float64 `json:"restaurant_lat"`
	RestaurantLng     float64 `json:"restaurant_lng"`

	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	CustomerLat     float64 `json:"customer_lat"`
	CustomerLng     float64 `json:"customer_lng"`

	RiderEarning string `json:"rider_earning"`

	// Version is the optimistic concurrency counter checked and incremented
	// on every status write.
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

type Item struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	PriceEach string    `json:"price_each"` // frozen menu price at creation
	CreatedAt time.Time `json:"created_at"`
}

// ItemDetail is an order line resolved against the live catalog for display.
// Name falls back to "Unknown Item" when the menu row has since been deleted;
// PriceEach stays the snapshot regardless.
type ItemDetail struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	PriceEach string `json:"price_each"`
}

// StatusChange is one append-only history row. OldStatus is empty on the
// creation row.
type StatusChange struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus Status    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}
