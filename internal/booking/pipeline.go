// Package booking turns a completed wizard state into a confirmed booking:
// pre-flight validation, payload construction, the retrying network call,
// and the success/failure aftermath.
package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"glamora/internal/cart"
	"glamora/pkg/client"
	"glamora/pkg/config"
	apperrors "glamora/pkg/errors"
	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/ui"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Pipeline submits bookings. A guard flag keeps at most one submission in
// flight; it is reset on failure so the user can retry manually.
type Pipeline struct {
	client   *client.BookingClient
	cart     *cart.Store
	notifier ui.Notifier
	cfg      *config.Config
	log      *logger.Logger
	validate *validator.Validate

	mu         sync.Mutex
	submitting bool

	onTeardown func()
	now        func() time.Time
}

func NewPipeline(cfg *config.Config, c *client.BookingClient, cartStore *cart.Store, notifier ui.Notifier, log *logger.Logger) *Pipeline {
	return &Pipeline{
		client:   c,
		cart:     cartStore,
		notifier: notifier,
		cfg:      cfg,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

// OnTeardown registers the callback that dismantles the wizard after a
// successful submission. It fires after the configured delay so the
// confirmation can be read.
func (p *Pipeline) OnTeardown(fn func()) {
	p.onTeardown = fn
}

func (p *Pipeline) Submitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}

// Submit runs the full pipeline against a wizard snapshot. Validation
// failures are aggregated and surfaced together; no network call is made
// unless every gate passes.
func (p *Pipeline) Submit(ctx context.Context, state model.BookingState, customer model.Customer) (*model.BookingConfirmation, error) {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return nil, apperrors.Conflict("A booking submission is already in progress")
	}
	p.submitting = true
	p.mu.Unlock()

	items := p.cart.Items()

	if errs := preflight(state, items, customer.ID, p.now()); len(errs) > 0 {
		p.resetSubmitting()
		p.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Incomplete booking details",
			Message: strings.Join(errs, "\n"),
		})
		if customer.ID == 0 {
			// Unauthenticated submissions prompt a sign-in redirect instead
			// of ever reaching the network.
			return nil, apperrors.Unauthorized(msgNoSignIn)
		}
		return nil, apperrors.Validation("Booking details are incomplete", map[string]any{"errors": errs})
	}

	payload := p.buildRequest(state, items, customer)
	if err := p.validate.Struct(payload); err != nil {
		p.resetSubmitting()
		p.log.Error("Booking payload failed validation", "error", err)
		return nil, apperrors.Validation("Booking payload is invalid", map[string]any{"error": err.Error()})
	}

	resp, err := p.client.Create(ctx, payload)
	if err != nil {
		p.resetSubmitting()
		p.log.Error("Booking submission failed", "customer", customer.ID, "error", err)
		p.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Booking failed",
			Message: apperrors.Message(err, "Something went wrong with the booking. Please try again."),
		})
		return nil, err
	}

	confirmation, err := p.client.DecodeConfirmation(resp)
	if err != nil {
		p.resetSubmitting()
		p.log.Error("Failed to decode booking confirmation", "error", err)
		p.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Booking failed",
			Message: "The server returned an unexpected response",
		})
		return nil, apperrors.Internal("Failed to decode booking confirmation", err)
	}

	// Cash only: payment happens on arrival, nothing else to settle here.
	p.cart.ClearAll()

	p.notifier.Notify(ui.Toast{
		Type:    ui.ToastSuccess,
		Title:   "Booking confirmed",
		Message: "Your booking was created successfully. Payment is due on arrival.",
		Dismiss: p.cfg.ConfirmationDismiss,
	})

	p.log.Info("Booking created",
		"booking_id", confirmation.ID,
		"customer", customer.ID,
		"service", payload.Service,
		"date", payload.BookingDate,
		"time", payload.BookingTime,
	)

	if p.onTeardown != nil {
		time.AfterFunc(p.cfg.TeardownDelay, p.onTeardown)
	}

	return confirmation, nil
}

// buildRequest assembles the submission payload. When the cart path is
// active the first cart item stands in as the service id and the full cart
// rides along as line items; the price is always the aggregate total.
func (p *Pipeline) buildRequest(state model.BookingState, items []model.CartItem, customer model.Customer) *model.BookingRequest {
	serviceID := ""
	if state.SelectedService != nil {
		serviceID = state.SelectedService.ID
	}

	total := state.TotalPrice
	var lineItems []model.BookingLineItem
	if len(items) > 0 {
		serviceID = items[0].ID
		total = 0
		for _, item := range items {
			total += item.Price * float64(item.Quantity)
			lineItems = append(lineItems, model.BookingLineItem{
				ServiceID: item.ID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
	}

	paymentMethod := "cash"
	if state.PaymentMethod != nil {
		paymentMethod = state.PaymentMethod.ID
	}

	var staff *string
	if state.SelectedStaff != nil {
		staff = &state.SelectedStaff.ID
	}

	var couponID *int64
	if state.CouponData != nil {
		couponID = &state.CouponData.ID
	}

	return &model.BookingRequest{
		Customer:        customer.ID,
		Service:         serviceID,
		Staff:           staff,
		Address:         state.SelectedAddress.ID,
		BookingDate:     state.SelectedDate.Format(dateLayout),
		BookingTime:     state.SelectedTime,
		PaymentMethod:   paymentMethod,
		SpecialRequests: state.SpecialRequests,
		Price:           total,
		Coupon:          couponID,
		CartItems:       lineItems,
	}
}

func (p *Pipeline) resetSubmitting() {
	p.mu.Lock()
	p.submitting = false
	p.mu.Unlock()
}
