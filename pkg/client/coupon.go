package client

import (
	"context"
	"fmt"

	"glamora/pkg/model"
)

type CouponClient struct {
	http *Client
}

func NewCouponClient(http *Client) *CouponClient {
	return &CouponClient{http: http}
}

func (c *CouponClient) Validate(ctx context.Context, code string, amount float64) (*Response, error) {
	return c.http.POST(ctx, "/api/validate-coupon/", &model.CouponValidateRequest{
		Code:   code,
		Amount: amount,
	})
}

func (c *CouponClient) DecodeValidation(resp *Response) (*model.CouponValidateResponse, error) {
	var result model.CouponValidateResponse
	if err := resp.DecodeJSON(&result); err != nil {
		return nil, fmt.Errorf("could not decode coupon validation: %w", err)
	}
	return &result, nil
}
