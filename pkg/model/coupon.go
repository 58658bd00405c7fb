package model

// CouponData is a validated discount. It exists only after a successful
// validation against the total that was current at that moment.
type CouponData struct {
	ID             int64   `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value"`
	DiscountAmount float64 `json:"discount_amount"`
}

type CouponValidateRequest struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

type CouponValidateResponse struct {
	Valid          bool                `json:"valid"`
	Coupon         *CouponRecord       `json:"coupon,omitempty"`
	DiscountAmount float64             `json:"discount_amount,omitempty"`
	Errors         map[string][]string `json:"errors,omitempty"`
}

type CouponRecord struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	DiscountType  string  `json:"discount_type"`
	DiscountValue float64 `json:"discount_value"`
}

// FieldError returns the server's field-level message for the code field,
// or empty when none was supplied.
func (r *CouponValidateResponse) FieldError() string {
	if msgs, ok := r.Errors["code"]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}
