package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Food is a single menu entry as served by the foods API.
type Food struct {
	ID          int64  `json:"id,omitempty" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
	Price       string `json:"price" bson:"price"`
	Available   bool   `json:"available" bson:"available"`
	Image       string `json:"image" bson:"image"`
}

// FoodInput carries the fields collected by the add and edit forms.
type FoodInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
}

// Draft converts the form input into a creation payload. New entries are always available.
func (in FoodInput) Draft() Food {
	return Food{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       strings.TrimSpace(in.Price),
		Image:       strings.TrimSpace(in.Image),
		Available:   true,
	}
}

// MergeInto writes every form field onto f, so an emptied field clears the
// record's value. ID and Available are kept from f. Start from InputFrom(f)
// to change only some fields.
func (in FoodInput) MergeInto(f Food) Food {
	merged := f
	merged.Name = strings.TrimSpace(in.Name)
	merged.Description = strings.TrimSpace(in.Description)
	merged.Price = strings.TrimSpace(in.Price)
	merged.Image = strings.TrimSpace(in.Image)
	return merged
}

// InputFrom prefills a form with the values of an existing record.
func InputFrom(f Food) FoodInput {
	return FoodInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Image:       f.Image,
	}
}

// FormatPrice renders a price with two decimals. Unparsable prices are returned trimmed as-is.
func FormatPrice(price string) string {
	trimmed := strings.TrimSpace(price)
	if trimmed == "" {
		return ""
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", "."))
	if err != nil {
		return trimmed
	}
	return d.StringFixed(2)
}
