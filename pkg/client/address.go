package client

import (
	"context"
	"fmt"

	"glamora/pkg/model"
)

type AddressClient struct {
	http *Client
}

func NewAddressClient(http *Client) *AddressClient {
	return &AddressClient{http: http}
}

func (c *AddressClient) List(ctx context.Context, customerID int64) (*Response, error) {
	return c.http.GET(ctx, fmt.Sprintf("/api/addresses/?customer=%d", customerID))
}

func (c *AddressClient) Create(ctx context.Context, req *model.AddressCreateRequest) (*Response, error) {
	return c.http.POST(ctx, "/api/addresses/", req)
}

func (c *AddressClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.http.DELETE(ctx, fmt.Sprintf("/api/addresses/%d/", id))
}

// DecodeAddressList tolerates the three list shapes the backend has been
// observed to serve: a bare array, a {results: [...]} page envelope, and a
// {addresses: [...]} custom envelope. Anything else normalizes to an empty
// list rather than an error.
func (c *AddressClient) DecodeAddressList(resp *Response) []model.Address {
	var bare []model.AddressRecord
	if err := resp.DecodeJSON(&bare); err == nil {
		return normalizeAddresses(bare)
	}

	var envelope struct {
		Results   []model.AddressRecord `json:"results"`
		Addresses []model.AddressRecord `json:"addresses"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return []model.Address{}
	}
	if envelope.Results != nil {
		return normalizeAddresses(envelope.Results)
	}
	if envelope.Addresses != nil {
		return normalizeAddresses(envelope.Addresses)
	}
	return []model.Address{}
}

func (c *AddressClient) DecodeAddress(resp *Response) (*model.Address, error) {
	var record model.AddressRecord
	if err := resp.DecodeJSON(&record); err != nil {
		return nil, fmt.Errorf("could not decode address record: %w", err)
	}
	addr := record.Normalize()
	return &addr, nil
}

func normalizeAddresses(records []model.AddressRecord) []model.Address {
	addresses := make([]model.Address, 0, len(records))
	for _, r := range records {
		addresses = append(addresses, r.Normalize())
	}
	return addresses
}
