package api

import (
	"context"
	"net/http"
)

type shareRequest struct {
	SharedWithEmail string `json:"shared_with_email"`
}

// ListShoppingLists returns the user's own and shared-with lists.
func (c *Client) ListShoppingLists(ctx context.Context) ([]ShoppingList, error) {
	var lists []ShoppingList
	if err := c.do(ctx, http.MethodGet, "/shopping-lists/", nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// CreateShoppingList creates a new list.
func (c *Client) CreateShoppingList(ctx context.Context, in ShoppingListIn) (*ShoppingList, error) {
	var list ShoppingList
	if err := c.do(ctx, http.MethodPost, "/shopping-lists/", in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetShoppingList returns a single list with its counters.
func (c *Client) GetShoppingList(ctx context.Context, listID string) (*ShoppingList, error) {
	var list ShoppingList
	if err := c.do(ctx, http.MethodGet, "/shopping-lists/"+listID, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateShoppingList renames or re-describes a list.
func (c *Client) UpdateShoppingList(ctx context.Context, listID string, in ShoppingListIn) (*ShoppingList, error) {
	var list ShoppingList
	if err := c.do(ctx, http.MethodPatch, "/shopping-lists/"+listID, in, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DeleteShoppingList removes a list and its items.
func (c *Client) DeleteShoppingList(ctx context.Context, listID string) error {
	return c.do(ctx, http.MethodDelete, "/shopping-lists/"+listID, nil, nil)
}

// ShareShoppingList grants another account access to the list.
func (c *Client) ShareShoppingList(ctx context.Context, listID, email string) error {
	return c.do(ctx, http.MethodPost, "/shopping-lists/"+listID+"/share", shareRequest{SharedWithEmail: email}, nil)
}

// UnshareShoppingList revokes a user's access to the list.
func (c *Client) UnshareShoppingList(ctx context.Context, listID, userID string) error {
	return c.do(ctx, http.MethodDelete, "/shopping-lists/"+listID+"/share/"+userID, nil, nil)
}

// ListShoppingItems returns the items of a list.
func (c *Client) ListShoppingItems(ctx context.Context, listID string) ([]ShoppingItem, error) {
	var items []ShoppingItem
	if err := c.do(ctx, http.MethodGet, "/shopping-lists/"+listID+"/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddShoppingItem appends an item to a list.
func (c *Client) AddShoppingItem(ctx context.Context, listID string, in ShoppingItemIn) (*ShoppingItem, error) {
	var item ShoppingItem
	if err := c.do(ctx, http.MethodPost, "/shopping-lists/"+listID+"/items", in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateShoppingItem applies a partial update (check off, rename, requantify).
func (c *Client) UpdateShoppingItem(ctx context.Context, listID, itemID string, in ShoppingItemUpdate) (*ShoppingItem, error) {
	var item ShoppingItem
	if err := c.do(ctx, http.MethodPatch, "/shopping-lists/"+listID+"/items/"+itemID, in, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteShoppingItem removes one item from a list.
func (c *Client) DeleteShoppingItem(ctx context.Context, listID, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/shopping-lists/"+listID+"/items/"+itemID, nil, nil)
}

// ClearShoppingItems removes every item from a list, or only the checked
// ones when checkedOnly is set.
func (c *Client) ClearShoppingItems(ctx context.Context, listID string, checkedOnly bool) error {
	path := "/shopping-lists/" + listID + "/items"
	if checkedOnly {
		path += "?clear_checked=true"
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// AddRecipeToShoppingList expands a recipe's ingredients into list items.
func (c *Client) AddRecipeToShoppingList(ctx context.Context, listID, recipeID string) ([]ShoppingItem, error) {
	var items []ShoppingItem
	if err := c.do(ctx, http.MethodPost, "/shopping-lists/"+listID+"/from-recipe/"+recipeID, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
