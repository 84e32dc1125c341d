package api

import (
	"context"
	"net/http"
	"net/url"
)

// Suggestions returns ingredient-name completions for a partial query.
func (c *Client) Suggestions(ctx context.Context, query string) ([]string, error) {
	var suggestions []string
	path := "/suggestions/?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
