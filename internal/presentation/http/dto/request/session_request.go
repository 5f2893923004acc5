package request

// AddLineRequest puts one unit of an article on a table's cart.
type AddLineRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Price   float64 `json:"price" binding:"min=0"`
	QtyType string  `json:"qtyType" binding:"max=50"`
	Emoji   string  `json:"emoji" binding:"max=10"`
}

// UpdateQuantityRequest nudges a cart line's quantity up or down.
type UpdateQuantityRequest struct {
	Index int `json:"index" binding:"min=0"`
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

// RemoveLineRequest drops a cart line.
type RemoveLineRequest struct {
	Index int `json:"index" binding:"min=0"`
}

// LinkCustomerRequest attaches a directory customer to the session.
type LinkCustomerRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
}
