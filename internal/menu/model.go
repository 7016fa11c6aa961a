package menu

import "time"

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price      string    `json:"price"`
	ImageURL   string    `json:"image_url,omitempty"`
	CategoryID string    `json:"category_id"`
	Available  bool      `json:"available"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ItemWithCategory is the menu listing row: an item joined with its
// category name.
type ItemWithCategory struct {
	Item
	CategoryName string `json:"category_name"`
}

// CreateItemRequest is the admin create payload.
/// swagger:model CreateItemRequest
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required" example:"Chicken Karahi"`
	Description string `json:"description" example:"Full handi, serves two"`
	Price       string `json:"price" binding:"required" example:"500.00"`
	ImageURL    string `json:"image_url"`
	CategoryID  string `json:"category_id" binding:"required"`
	Available   *bool  `json:"available"`
}

// UpdateItemRequest payload of partial update. Pointer fields distinguish
// "leave unchanged" from "set to zero value"; the item id and category
// foreign key cannot be overwritten through it.
// swagger:model UpdateItemRequest
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	ImageURL    *string `json:"image_url"`
	Available   *bool   `json:"available"`
}
