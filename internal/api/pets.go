package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"roveri/internal/models"
)

// ListPets fetches the pet catalog. filters may carry species/status/
// search query parameters; nil means everything.
func (c *Client) ListPets(ctx context.Context, filters url.Values) ([]models.Pet, error) {
	path := "pets/"
	if len(filters) > 0 {
		path += "?" + filters.Encode()
	}
	return getList[models.Pet](ctx, c, path)
}

func (c *Client) GetPet(ctx context.Context, id int64) (*models.Pet, error) {
	var pet models.Pet
	if err := c.getJSON(ctx, fmt.Sprintf("pets/%d/", id), &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (c *Client) CreatePet(ctx context.Context, pet models.Pet) (*models.Pet, error) {
	var out models.Pet
	if err := c.sendJSON(ctx, http.MethodPost, "pets/", pet, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePet(ctx context.Context, id int64, pet models.Pet) (*models.Pet, error) {
	var out models.Pet
	if err := c.sendJSON(ctx, http.MethodPatch, fmt.Sprintf("pets/%d/", id), pet, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("pets/%d/", id), nil, "")
	return err
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.getJSON(ctx, "pets/stats/", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ListFavorites(ctx context.Context) ([]models.Pet, error) {
	return getList[models.Pet](ctx, c, "pets/favorites/")
}

func (c *Client) AddFavorite(ctx context.Context, petID int64) error {
	payload := map[string]int64{"pet_id": petID}
	return c.sendJSON(ctx, http.MethodPost, "pets/favorites/", payload, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, petID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("pets/favorites/%d/", petID), nil, "")
	return err
}
