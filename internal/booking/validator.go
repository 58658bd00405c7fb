package booking

import (
	"time"

	"glamora/pkg/model"
)

// Required-field messages, aggregated and shown together rather than one
// at a time.
const (
	msgNoService = "Please choose a service"
	msgNoDate    = "Please choose a date"
	msgNoTime    = "Please choose a time"
	msgPastDate  = "Bookings cannot be made for a past date"
	msgNoAddress = "Please choose an address"
	msgNoPayment = "Please choose a payment method"
	msgNoSignIn  = "You must sign in first"
)

// preflight collects every validation failure before submission is
// attempted. An empty result means the gate is open.
func preflight(state model.BookingState, cartItems []model.CartItem, customerID int64, now time.Time) []string {
	var errs []string

	if state.SelectedService == nil && len(cartItems) == 0 {
		errs = append(errs, msgNoService)
	}
	if state.SelectedDate == nil {
		errs = append(errs, msgNoDate)
	}
	if state.SelectedTime == "" {
		errs = append(errs, msgNoTime)
	}
	if state.SelectedDate != nil && beforeDay(*state.SelectedDate, now) {
		errs = append(errs, msgPastDate)
	}
	if state.SelectedAddress == nil {
		errs = append(errs, msgNoAddress)
	}
	if state.PaymentMethod == nil {
		errs = append(errs, msgNoPayment)
	}
	if customerID == 0 {
		errs = append(errs, msgNoSignIn)
	}

	return errs
}

// beforeDay reports whether date falls on a calendar day strictly before
// now's. Today is bookable.
func beforeDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	day := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return day.Before(today)
}
