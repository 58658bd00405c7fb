// Package wizard orchestrates the section-by-section booking flow: which
// sections are unlocked, which are expanded, and how selections feed the
// running total.
package wizard

import (
	"context"
	"time"

	"glamora/internal/cart"
	"glamora/internal/coupon"
	"glamora/pkg/config"
	apperrors "glamora/pkg/errors"
	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/sanitizer"
)

type Section string

const (
	SectionServices     Section = "services"
	SectionCart         Section = "cart"
	SectionOffer        Section = "offer"
	SectionDateTime     Section = "datetime"
	SectionLocation     Section = "location"
	SectionPayment      Section = "payment"
	SectionConfirmation Section = "confirmation"
)

// Session is the wizard aggregate for one booking attempt. It runs on the
// UI goroutine; the cart store it reads from is safe for shared access.
type Session struct {
	state       model.BookingState
	current     Section
	expanded    []Section
	timeSlots   []string
	couponError string

	cart    *cart.Store
	coupons *coupon.Validator
	cfg     *config.Config
	log     *logger.Logger
}

// MountOptions selects the wizard entry point. Preselected covers the
// direct "book now" path, Offer covers the discounted deep-link. The cart
// path activates by itself whenever the cart is nonempty and wins over
// Offer; the two are mutually exclusive.
type MountOptions struct {
	Preselected *model.Service
	Offer       *model.OfferData
	Customer    model.CustomerInfo
}

func NewSession(cfg *config.Config, cartStore *cart.Store, coupons *coupon.Validator, log *logger.Logger) *Session {
	return &Session{
		current:  SectionServices,
		expanded: []Section{SectionServices},
		cart:     cartStore,
		coupons:  coupons,
		cfg:      cfg,
		log:      log,
	}
}

// Mount applies the entry-point rules from the options and the cart.
func (s *Session) Mount(opts MountOptions) {
	s.state.CustomerInfo = opts.Customer

	switch {
	case s.cart.TotalItems() > 0:
		// Cart path: skip services entirely. The first cart item is seeded
		// as the selected service for price display only; submission uses
		// the full cart.
		items := s.cart.Items()
		first := items[0].AsService()
		s.state.SelectedService = &first
		s.current = SectionDateTime
		s.expanded = []Section{SectionCart, SectionDateTime}
		if opts.Offer != nil {
			s.log.Warn("Offer deep-link ignored: cart path is active")
		}

	case opts.Offer != nil:
		s.state.IsOfferBooking = true
		s.state.OfferData = opts.Offer
		s.state.SelectedService = &model.Service{
			ID:    opts.Offer.ID,
			Name:  opts.Offer.Name,
			Price: opts.Offer.DiscountedPrice,
		}
		s.current = SectionOffer
		s.expanded = []Section{SectionOffer, SectionDateTime}

	case opts.Preselected != nil:
		s.state.SelectedService = opts.Preselected
		s.current = SectionDateTime
		s.expanded = []Section{SectionServices, SectionDateTime}
	}

	s.recalculateTotal()
}

// --- Unlock table ---

func (s *Session) serviceChosen() bool {
	return s.state.SelectedService != nil || s.cart.TotalItems() > 0
}

// Unlocked reports whether a section may be entered given current state.
func (s *Session) Unlocked(section Section) bool {
	switch section {
	case SectionServices, SectionCart, SectionOffer:
		return true
	case SectionDateTime:
		return s.serviceChosen()
	case SectionLocation:
		return s.state.SelectedDate != nil && s.state.SelectedTime != ""
	case SectionPayment:
		return s.state.SelectedAddress != nil
	case SectionConfirmation:
		return s.state.PaymentMethod != nil
	default:
		return false
	}
}

// --- Selections ---

// SelectService records the choice and opens datetime without collapsing
// the services section.
func (s *Session) SelectService(svc model.Service) {
	s.state.SelectedService = &svc
	s.recalculateTotal()
	s.expand(SectionDateTime)
}

// SelectDate regenerates the slot grid for the chosen day and advances to
// location.
func (s *Session) SelectDate(date time.Time) error {
	if !s.Unlocked(SectionDateTime) {
		return apperrors.InvalidInput("Please choose a service first")
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	s.state.SelectedDate = &day
	s.timeSlots = GenerateSlots(s.cfg.DayStart, s.cfg.DayEnd, s.cfg.SlotInterval)
	s.expand(SectionLocation)
	return nil
}

func (s *Session) SelectTime(slot string) error {
	if s.state.SelectedDate == nil {
		return apperrors.InvalidInput("Please choose a date first")
	}
	s.state.SelectedTime = slot
	s.expand(SectionLocation)
	return nil
}

// SelectAddress is the explicit user pick; it advances to payment.
// Automatic default selection during address load goes through
// SetSelectedAddress instead and does not move the wizard.
func (s *Session) SelectAddress(addr model.Address) error {
	if !s.Unlocked(SectionLocation) {
		return apperrors.InvalidInput("Please choose a date and time first")
	}
	s.state.SelectedAddress = &addr
	s.expand(SectionPayment)
	return nil
}

func (s *Session) SelectPayment(method model.PaymentMethod) error {
	if !s.Unlocked(SectionPayment) {
		return apperrors.InvalidInput("Please choose an address first")
	}
	s.state.PaymentMethod = &method
	s.expand(SectionConfirmation)
	return nil
}

func (s *Session) SelectStaff(staff model.Staff) {
	s.state.SelectedStaff = &staff
}

func (s *Session) SetSpecialRequests(text string) {
	s.state.SpecialRequests = sanitizer.TrimAndNormalize(text)
}

func (s *Session) SetCouponCode(code string) {
	s.state.CouponCode = code
}

// --- Selection sink used by the address adapter ---

func (s *Session) SelectedAddress() *model.Address {
	return s.state.SelectedAddress
}

func (s *Session) SetSelectedAddress(addr model.Address) {
	s.state.SelectedAddress = &addr
}

func (s *Session) ClearSelectedAddress() {
	s.state.SelectedAddress = nil
}

// --- Coupon ---

// ApplyCoupon validates the currently typed code against the current total.
// On success the discount is applied and the total recomputed. On failure
// only the error message changes: a previously applied coupon is
// last-known-good and survives a failed retry for a different code.
func (s *Session) ApplyCoupon(ctx context.Context) error {
	amount := s.state.TotalPrice
	if amount == 0 && s.state.SelectedService != nil {
		amount = s.state.SelectedService.UnitPrice()
	}

	data, err := s.coupons.Validate(ctx, s.state.CouponCode, amount)
	if err != nil {
		s.couponError = apperrors.Message(err, "Could not validate the coupon code")
		return err
	}

	s.state.CouponData = data
	s.couponError = ""
	s.recalculateTotal()
	return nil
}

func (s *Session) CouponError() string {
	return s.couponError
}

// --- Totals ---

// RecalculateTotal re-derives the total after an external cart mutation.
// Selection changes inside the session recompute on their own.
func (s *Session) RecalculateTotal() {
	s.recalculateTotal()
}

func (s *Session) recalculateTotal() {
	var base float64
	switch {
	case s.cart.TotalItems() > 0:
		base = s.cart.TotalPrice()
	case s.state.IsOfferBooking && s.state.OfferData != nil:
		base = s.state.OfferData.DiscountedPrice
	case s.state.SelectedService != nil:
		base = s.state.SelectedService.UnitPrice()
	}

	var discount float64
	if s.state.CouponData != nil {
		discount = s.state.CouponData.DiscountAmount
	}

	s.state.TotalPrice = max(0, base-discount)
}

// --- Section bookkeeping ---

// expand adds a section to the expanded set and makes it current. The set
// only grows: opening a later step never hides an earlier one.
func (s *Session) expand(section Section) {
	for _, sec := range s.expanded {
		if sec == section {
			s.current = section
			return
		}
	}
	s.expanded = append(s.expanded, section)
	s.current = section
}

// ExpandSection is the user-driven variant of expand; locked sections are
// refused.
func (s *Session) ExpandSection(section Section) error {
	if !s.Unlocked(section) {
		return apperrors.InvalidInput("This step is not available yet")
	}
	s.expand(section)
	return nil
}

func (s *Session) Current() Section {
	return s.current
}

func (s *Session) Expanded() []Section {
	out := make([]Section, len(s.expanded))
	copy(out, s.expanded)
	return out
}

func (s *Session) IsExpanded(section Section) bool {
	for _, sec := range s.expanded {
		if sec == section {
			return true
		}
	}
	return false
}

// Progress is 20% per completed milestone: service, date+time, address,
// payment method. All four saturate to 100%.
func (s *Session) Progress() int {
	progress := 0
	if s.serviceChosen() {
		progress += 20
	}
	if s.state.SelectedDate != nil && s.state.SelectedTime != "" {
		progress += 20
	}
	if s.state.SelectedAddress != nil {
		progress += 20
	}
	if s.state.PaymentMethod != nil {
		progress += 20
	}
	if progress == 80 {
		progress = 100
	}
	return progress
}

func (s *Session) TimeSlots() []string {
	out := make([]string, len(s.timeSlots))
	copy(out, s.timeSlots)
	return out
}

// State returns a snapshot of the wizard aggregate.
func (s *Session) State() model.BookingState {
	return s.state
}

// --- Booking-scratch ---

// Checkpoint writes the wizard selections into the booking-scratch slot so
// they survive a full-page navigation to the checkout route.
func (s *Session) Checkpoint() {
	s.cart.UpdateBookingData(&model.BookingScratch{
		Service:         s.state.SelectedService,
		Date:            s.state.SelectedDate,
		Time:            s.state.SelectedTime,
		Address:         s.state.SelectedAddress,
		CustomerInfo:    s.state.CustomerInfo,
		SpecialRequests: s.state.SpecialRequests,
	})
}

// Restore rehydrates selections from a previous Checkpoint, if any.
func (s *Session) Restore() bool {
	scratch := s.cart.BookingData()
	if scratch == nil {
		return false
	}

	s.state.SelectedService = scratch.Service
	s.state.SelectedDate = scratch.Date
	s.state.SelectedTime = scratch.Time
	s.state.SelectedAddress = scratch.Address
	s.state.CustomerInfo = scratch.CustomerInfo
	s.state.SpecialRequests = scratch.SpecialRequests
	if scratch.Date != nil {
		s.timeSlots = GenerateSlots(s.cfg.DayStart, s.cfg.DayEnd, s.cfg.SlotInterval)
	}
	s.recalculateTotal()
	return true
}
