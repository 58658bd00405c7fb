// Package coupon validates discount codes against the backend.
package coupon

import (
	"context"
	"sync"

	"glamora/pkg/client"
	apperrors "glamora/pkg/errors"
	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/sanitizer"
)

// Validator submits a code plus the amount it should discount. A guard flag
// keeps at most one validation in flight; there is no queue.
type Validator struct {
	client *client.CouponClient
	log    *logger.Logger

	mu         sync.Mutex
	validating bool
}

func NewValidator(c *client.CouponClient, log *logger.Logger) *Validator {
	return &Validator{client: c, log: log}
}

// Validate checks code against amount. Blank codes are rejected locally
// without a network call. The caller decides what to do with the previous
// coupon on failure; Validate never touches applied state.
func (v *Validator) Validate(ctx context.Context, code string, amount float64) (*model.CouponData, error) {
	code = sanitizer.TrimAndNormalize(code)
	if code == "" {
		return nil, apperrors.InvalidInput("Coupon code cannot be empty")
	}

	v.mu.Lock()
	if v.validating {
		v.mu.Unlock()
		return nil, apperrors.Conflict("A coupon validation is already in progress")
	}
	v.validating = true
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.validating = false
		v.mu.Unlock()
	}()

	resp, err := v.client.Validate(ctx, code, amount)
	if err != nil {
		v.log.Warn("Coupon validation request failed", "code", code, "error", err)
		return nil, err
	}

	result, err := v.client.DecodeValidation(resp)
	if err != nil {
		return nil, apperrors.Internal("Failed to decode coupon validation", err)
	}

	if !result.Valid || result.Coupon == nil {
		message := result.FieldError()
		if message == "" {
			message = "Coupon code is invalid or has expired"
		}
		return nil, apperrors.Validation(message, nil)
	}

	v.log.Info("Coupon validated", "code", result.Coupon.Code, "discount_amount", result.DiscountAmount)
	return &model.CouponData{
		ID:             result.Coupon.ID,
		Code:           result.Coupon.Code,
		Name:           result.Coupon.Name,
		DiscountType:   result.Coupon.DiscountType,
		DiscountValue:  result.Coupon.DiscountValue,
		DiscountAmount: result.DiscountAmount,
	}, nil
}

// Validating reports whether a validation request is currently in flight.
func (v *Validator) Validating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.validating
}
