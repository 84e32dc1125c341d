package api

import (
	"context"
	"net/http"
)

type tagRequest struct {
	Name string `json:"name"`
}

// ListTags returns all of the user's tags.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.do(ctx, http.MethodGet, "/tags/", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag stores a new tag.
func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	if err := c.do(ctx, http.MethodPost, "/tags/", tagRequest{Name: name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// RenameTag changes a tag's name.
func (c *Client) RenameTag(ctx context.Context, tagID, name string) (*Tag, error) {
	var tag Tag
	if err := c.do(ctx, http.MethodPut, "/tags/"+tagID, tagRequest{Name: name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag removes a tag; recipes keep their other tags.
func (c *Client) DeleteTag(ctx context.Context, tagID string) error {
	return c.do(ctx, http.MethodDelete, "/tags/"+tagID, nil, nil)
}
