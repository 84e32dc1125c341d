package api

import (
	"github.com/jrsteele09/go-recipes-client/token"
)

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// RecipeIn is the payload for creating or replacing a recipe.
type RecipeIn struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	TagIDs      []string     `json:"tag_ids"`
	Source      string       `json:"source,omitempty"`
}

// Recipe is a stored recipe with its resolved tags.
type Recipe struct {
	RecipeIn
	ID   string `json:"id"`
	Tags []Tag  `json:"tags"`
}

// Tag labels recipes for filtering.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Category groups shopping items; system categories cannot be edited.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsSystem bool   `json:"is_system"`
}

// CategoryIn is the payload for creating or updating a category.
type CategoryIn struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ShoppingListIn is the payload for creating or renaming a shopping list.
type ShoppingListIn struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// SharedUser is another account a shopping list is shared with.
type SharedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ShoppingList is a list with its item counters and sharing state.
type ShoppingList struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	TotalItems      int          `json:"total_items"`
	CheckedItems    int          `json:"checked_items"`
	SharedWithUsers []SharedUser `json:"shared_with_users"`
}

// ShoppingItemIn is the payload for adding an item to a list.
type ShoppingItemIn struct {
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	RecipeID   string  `json:"recipe_id,omitempty"`
	CategoryID string  `json:"category_id,omitempty"`
}

// ShoppingItemUpdate is a partial update; nil fields are left unchanged.
type ShoppingItemUpdate struct {
	Name       *string  `json:"name,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       *string  `json:"unit,omitempty"`
	Checked    *bool    `json:"checked,omitempty"`
	RecipeID   *string  `json:"recipe_id,omitempty"`
	CategoryID *string  `json:"category_id,omitempty"`
}

// ShoppingItem is a stored list entry.
type ShoppingItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Quantity    float64   `json:"quantity"`
	Unit        string    `json:"unit"`
	Checked     bool      `json:"checked"`
	RecipeID    string    `json:"recipe_id"`
	RecipeTitle string    `json:"recipe_title"`
	CategoryID  string    `json:"category_id"`
	Category    *Category `json:"category"`
}

// Account is the signed-in user's profile.
type Account struct {
	ID    string     `json:"id"`
	Email string     `json:"email"`
	Plan  token.Plan `json:"plan"`
}
