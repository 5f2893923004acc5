package request

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=255"`
	Emoji string `json:"emoji" binding:"max=10"`
}

// CreateItemRequest represents an article creation request
type CreateItemRequest struct {
	CategoryID uint               `json:"category_id" binding:"required"`
	Name       string             `json:"name" binding:"required,min=1,max=255"`
	Emoji      string             `json:"emoji" binding:"max=10"`
	Prices     map[string]float64 `json:"prices" binding:"required"`
}

// UpdateItemRequest represents an article update request. Absent
// fields keep their current value.
type UpdateItemRequest struct {
	CategoryID uint               `json:"category_id"`
	Name       string             `json:"name" binding:"omitempty,max=255"`
	Emoji      string             `json:"emoji" binding:"omitempty,max=10"`
	Prices     map[string]float64 `json:"prices"`
}
