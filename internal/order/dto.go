package order

// CartLine is one cart entry in the create payload.
// swagger:model CartLine
type CartLine struct {
	ItemID   string `json:"item_id" validate:"required" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity int    `json:"quantity" validate:"required,min=1" example:"2"`
}

// CreateOrderRequest is the order placement payload.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Items           []CartLine `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string     `json:"delivery_address,omitempty"`
}

// OrderWithItems is the single-order read model: the order plus its lines
// resolved with menu item names.
type OrderWithItems struct {
	Order
	Items []ItemDetail `json:"items"`
}
