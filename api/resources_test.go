package api_test

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-recipes-client/api"
	"github.com/jrsteele09/go-recipes-client/token"
)

func TestClient_CreateRecipe(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recipes", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{
			"title": "Tomato Soup",
			"description": "Quick weeknight soup",
			"ingredients": [{"name": "tomato", "quantity": 4, "unit": "szt."}],
			"tag_ids": ["tag-1"]
		}`, string(body))

		_, _ = w.Write([]byte(`{
			"id": "recipe-1",
			"title": "Tomato Soup",
			"description": "Quick weeknight soup",
			"ingredients": [{"name": "tomato", "quantity": 4, "unit": "szt."}],
			"tag_ids": ["tag-1"],
			"tags": [{"id": "tag-1", "name": "soup"}]
		}`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	recipe, err := client.CreateRecipe(context.Background(), api.RecipeIn{
		Title:       "Tomato Soup",
		Description: "Quick weeknight soup",
		Ingredients: []api.Ingredient{{Name: "tomato", Quantity: 4, Unit: "szt."}},
		TagIDs:      []string{"tag-1"},
	})
	require.NoError(t, err)
	require.Equal(t, "recipe-1", recipe.ID)
	require.Len(t, recipe.Tags, 1)
	require.Equal(t, "soup", recipe.Tags[0].Name)
}

func TestClient_UpdateShoppingItemSendsOnlyChangedFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/shopping-lists/list-1/items/item-1", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"checked": true}`, string(body))

		_, _ = w.Write([]byte(`{"id":"item-1","name":"milk","quantity":1,"unit":"l","checked":true}`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	checked := true
	item, err := client.UpdateShoppingItem(context.Background(), "list-1", "item-1", api.ShoppingItemUpdate{Checked: &checked})
	require.NoError(t, err)
	require.True(t, item.Checked)
}

func TestClient_AddRecipeToShoppingList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/shopping-lists/list-1/from-recipe/recipe-1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"item-1","name":"tomato","quantity":4,"unit":"szt.","recipe_id":"recipe-1","recipe_title":"Tomato Soup"}]`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	items, err := client.AddRecipeToShoppingList(context.Background(), "list-1", "recipe-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Tomato Soup", items[0].RecipeTitle)
}

func TestClient_ShareShoppingList(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shopping-lists/list-1/share", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"shared_with_email": "jane@example.com"}`, string(body))

		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	require.NoError(t, client.ShareShoppingList(context.Background(), "list-1", "jane@example.com"))
}

func TestClient_Suggestions(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/suggestions/", r.URL.Path)
		require.Equal(t, "mil", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`["milk","millet"]`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	suggestions, err := client.Suggestions(context.Background(), "mil")
	require.NoError(t, err)
	require.Equal(t, []string{"milk", "millet"}, suggestions)
}

func TestClient_UpdatePlanReturnsFreshPair(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/account/plan", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"plan": "premium"}`, string(body))

		_, _ = w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2","token_type":"bearer"}`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	pair, err := client.UpdatePlan(context.Background(), token.PlanPremium)
	require.NoError(t, err)
	require.Equal(t, "access-2", pair.AccessToken)
	require.Equal(t, "refresh-2", pair.RefreshToken)
}

func TestClient_PremiumCheck(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/account/premium-check", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": "Welcome, premium user jane@example.com!"}`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	message, err := client.PremiumCheck(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Welcome, premium user jane@example.com!", message)
}

func TestClient_PremiumCheckForbiddenForFreePlan(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "Premium subscription required"}`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	_, err := client.PremiumCheck(context.Background())
	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestClient_ClearShoppingItems(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/shopping-lists/list-1/items", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	require.NoError(t, client.ClearShoppingItems(context.Background(), "list-1", false))
	require.Empty(t, gotQuery)

	require.NoError(t, client.ClearShoppingItems(context.Background(), "list-1", true))
	require.Equal(t, "clear_checked=true", gotQuery)
}

func TestClient_ListCategories(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/categories/", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"cat-1","name":"Dairy","icon":"🥛","is_system":true},
			{"id":"cat-2","name":"Homebrew","icon":null,"is_system":false}
		]`))
	})

	client := newTestClient(t, handler, &fakeSession{token: "access-1"})

	categories, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.True(t, categories[0].IsSystem)
	require.Empty(t, categories[1].Icon)
}
