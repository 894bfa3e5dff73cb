// Package barcode resolves UPC codes to product information so the add
// form can be prefilled from a scanned or typed code.
package barcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pantryterm/pantry/internal/config"
)

// ErrNotFound indicates the code is not in the product database.
var ErrNotFound = errors.New("product not found")

// Product is the result of a successful lookup.
type Product struct {
	Code     string
	Label    string
	Brand    string
	Category string
	Calories float64
}

// Client looks up products by UPC.
type Client interface {
	Lookup(ctx context.Context, code string) (*Product, error)
}

type client struct {
	http    *resty.Client
	baseURL string
	appID   string
	appKey  string
}

// NewClient creates a lookup client for the food-database API.
func NewClient(cfg config.BarcodeConfig) Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpClient := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &client{
		http:    httpClient,
		baseURL: cfg.BaseURL,
		appID:   cfg.AppID,
		appKey:  cfg.AppKey,
	}
}

type parserResponse struct {
	Hints []struct {
		Food struct {
			Label        string `json:"label"`
			Brand        string `json:"brand"`
			CategoryName string `json:"category"`
			Nutrients    struct {
				Calories float64 `json:"ENERC_KCAL"`
			} `json:"nutrients"`
		} `json:"food"`
	} `json:"hints"`
}

// Lookup resolves a UPC. Unknown codes return ErrNotFound.
func (c *client) Lookup(ctx context.Context, code string) (*Product, error) {
	if code == "" {
		return nil, errors.New("empty barcode")
	}

	var body parserResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"upc":     code,
			"app_id":  c.appID,
			"app_key": c.appKey,
		}).
		SetResult(&body).
		Get(c.baseURL + "/api/food-database/v2/parser")
	if err != nil {
		return nil, fmt.Errorf("looking up barcode %s: %w", code, err)
	}

	if resp.StatusCode() == 404 {
		return nil, ErrNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("barcode lookup failed with status %d: %s",
			resp.StatusCode(), resp.String())
	}

	if len(body.Hints) == 0 {
		return nil, ErrNotFound
	}

	food := body.Hints[0].Food
	return &Product{
		Code:     code,
		Label:    food.Label,
		Brand:    food.Brand,
		Category: food.CategoryName,
		Calories: food.Nutrients.Calories,
	}, nil
}
