package api

import (
	"context"
	"net/http"
)

// ListCategories returns system and user categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory stores a new user category.
func (c *Client) CreateCategory(ctx context.Context, in CategoryIn) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/categories/", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory edits a user category. System categories are read-only.
func (c *Client) UpdateCategory(ctx context.Context, categoryID string, in CategoryIn) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+categoryID, in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a user category.
func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+categoryID, nil, nil)
}
