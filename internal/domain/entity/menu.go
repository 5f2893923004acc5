package entity

import "encoding/json"

// Category groups menu items ("clusters" in the till UI).
type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Emoji string `gorm:"size:10" json:"emoji"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// MenuItem is a sellable article. Prices holds a JSON object of
// variant label to unit price, e.g. {"cup": 20, "pot": 60}; one article
// can be sold in several quantity variants.
type MenuItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	CategoryID uint   `gorm:"not null;index" json:"category_id"`
	Name       string `gorm:"size:255;not null" json:"name"`
	Emoji      string `gorm:"size:10" json:"emoji"`
	Prices     string `gorm:"type:text" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// PriceMap decodes the Prices JSON column. A malformed or empty column
// yields an empty map rather than an error; the till simply shows no
// variants for the article.
func (m *MenuItem) PriceMap() map[string]float64 {
	prices := map[string]float64{}
	if m.Prices == "" {
		return prices
	}
	_ = json.Unmarshal([]byte(m.Prices), &prices)
	return prices
}

// SetPriceMap encodes the given variants into the Prices column.
func (m *MenuItem) SetPriceMap(prices map[string]float64) error {
	raw, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	m.Prices = string(raw)
	return nil
}

// MarshalJSON exposes the decoded price map instead of the raw column.
func (m MenuItem) MarshalJSON() ([]byte, error) {
	type Alias MenuItem
	return json.Marshal(&struct {
		Alias
		Prices map[string]float64 `json:"prices"`
	}{
		Alias:  Alias(m),
		Prices: m.PriceMap(),
	})
}
