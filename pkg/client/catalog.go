package client

import (
	"context"
	"fmt"

	"glamora/pkg/model"
)

type CatalogClient struct {
	http *Client
}

func NewCatalogClient(http *Client) *CatalogClient {
	return &CatalogClient{http: http}
}

func (c *CatalogClient) Services(ctx context.Context) (*Response, error) {
	return c.http.GET(ctx, "/api/services/")
}

func (c *CatalogClient) ServiceCategories(ctx context.Context) (*Response, error) {
	return c.http.GET(ctx, "/api/service-categories/")
}

func (c *CatalogClient) DecodeServices(resp *Response) ([]model.Service, error) {
	var services []model.Service
	if err := resp.DecodeJSON(&services); err != nil {
		return nil, fmt.Errorf("could not decode service list: %w", err)
	}
	return services, nil
}

func (c *CatalogClient) DecodeCategories(resp *Response) ([]model.ServiceCategory, error) {
	var categories []model.ServiceCategory
	if err := resp.DecodeJSON(&categories); err != nil {
		return nil, fmt.Errorf("could not decode category list: %w", err)
	}
	return categories, nil
}
