package api

import (
	"context"
	"net/http"
)

// ListRecipes returns all of the user's recipes.
func (c *Client) ListRecipes(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// CreateRecipe stores a new recipe.
func (c *Client) CreateRecipe(ctx context.Context, in RecipeIn) (*Recipe, error) {
	var recipe Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces an existing recipe.
func (c *Client) UpdateRecipe(ctx context.Context, recipeID string, in RecipeIn) (*Recipe, error) {
	var recipe Recipe
	if err := c.do(ctx, http.MethodPut, "/recipes/"+recipeID, in, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe.
func (c *Client) DeleteRecipe(ctx context.Context, recipeID string) error {
	return c.do(ctx, http.MethodDelete, "/recipes/"+recipeID, nil, nil)
}
