package model

import "time"

// Customer is the authenticated account the booking is made for. A zero ID
// means guest: no addresses, no submission.
type Customer struct {
	ID    int64  `json:"id"`
	Phone string `json:"phone,omitempty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PaymentMethods is the static payment catalog. Cash is currently the only
// entry; the salon takes payment on arrival.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "cash", Name: "Cash", Description: "Pay in cash on arrival"},
	}
}

type Staff struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	Rating         float64 `json:"rating"`
	Image          string  `json:"image"`
}

// OfferData carries the discounted deep-link pricing shown in the offer
// section instead of the service catalog.
type OfferData struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountedPrice float64 `json:"discountedPrice"`
}

// BookingState is the wizard aggregate. SelectedService and the cart path
// are mutually exclusive at submission time; when the wizard mounts over a
// nonempty cart the first cart item is seeded here for pricing only.
type BookingState struct {
	SelectedService *Service       `json:"selectedService,omitempty"`
	SelectedDate    *time.Time     `json:"selectedDate,omitempty"`
	SelectedTime    string         `json:"selectedTime,omitempty"`
	SelectedStaff   *Staff         `json:"selectedStaff,omitempty"`
	SelectedAddress *Address       `json:"selectedAddress,omitempty"`
	CustomerInfo    CustomerInfo   `json:"customerInfo"`
	SpecialRequests string         `json:"specialRequests"`
	PaymentMethod   *PaymentMethod `json:"paymentMethod,omitempty"`
	CouponCode      string         `json:"couponCode"`
	CouponData      *CouponData    `json:"couponData,omitempty"`
	IsOfferBooking  bool           `json:"isOfferBooking"`
	OfferData       *OfferData     `json:"offerData,omitempty"`
	TotalPrice      float64        `json:"totalPrice"`
}

// BookingScratch is the subset of wizard state persisted under its own
// durable key so a full-page navigation to the checkout route survives.
type BookingScratch struct {
	Service         *Service     `json:"service,omitempty"`
	Date            *time.Time   `json:"date,omitempty"`
	Time            string       `json:"time,omitempty"`
	Address         *Address     `json:"address,omitempty"`
	CustomerInfo    CustomerInfo `json:"customerInfo"`
	SpecialRequests string       `json:"specialRequests"`
}

type BookingLineItem struct {
	ServiceID string  `json:"service_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// BookingRequest is the submission payload of POST /bookings/.
type BookingRequest struct {
	Customer        int64             `json:"customer" validate:"required,gt=0"`
	Service         string            `json:"service" validate:"required"`
	Staff           *string           `json:"staff"`
	Address         int64             `json:"address" validate:"required,gt=0"`
	BookingDate     string            `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime     string            `json:"booking_time" validate:"required"`
	PaymentMethod   string            `json:"payment_method" validate:"required"`
	SpecialRequests string            `json:"special_requests"`
	Price           float64           `json:"price" validate:"gte=0"`
	Coupon          *int64            `json:"coupon"`
	CartItems       []BookingLineItem `json:"cart_items"`
}

type BookingConfirmation struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
}
