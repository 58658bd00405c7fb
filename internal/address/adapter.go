// Package address adapts the backend address endpoints for the booking
// wizard: loading, creating and deleting customer addresses, and keeping
// the wizard's selected address consistent with the list.
package address

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"glamora/pkg/client"
	apperrors "glamora/pkg/errors"
	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/sanitizer"
	"glamora/pkg/ui"

	"github.com/go-playground/validator/v10"
)

// Selection is the slice of wizard state the adapter writes back into.
type Selection interface {
	SelectedAddress() *model.Address
	SetSelectedAddress(model.Address)
	ClearSelectedAddress()
}

// Adapter owns the loaded address list. Every failure is converted into a
// user-facing notification at this boundary; nothing escapes as an error.
type Adapter struct {
	client    *client.AddressClient
	selection Selection
	notifier  ui.Notifier
	confirmer ui.Confirmer
	validate  *validator.Validate
	log       *logger.Logger

	mu        sync.Mutex
	addresses []model.Address
}

func NewAdapter(c *client.AddressClient, selection Selection, notifier ui.Notifier, confirmer ui.Confirmer, log *logger.Logger) *Adapter {
	return &Adapter{
		client:    c,
		selection: selection,
		notifier:  notifier,
		confirmer: confirmer,
		validate:  validator.New(),
		log:       log,
	}
}

// LoadForCustomer fetches the customer's addresses. Guests (zero customer
// id) resolve to an empty list without a network call. After a successful
// load, if nothing is selected yet and exactly one address is flagged as
// default, it becomes the selection.
func (a *Adapter) LoadForCustomer(ctx context.Context, customerID int64) []model.Address {
	if customerID == 0 {
		a.setAddresses(nil)
		return []model.Address{}
	}

	resp, err := a.client.List(ctx, customerID)
	if err != nil {
		a.log.Error("Failed to load addresses", "customer", customerID, "error", err)
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Failed to load addresses",
			Message: apperrors.Message(err, "Something went wrong while loading your addresses"),
		})
		a.setAddresses(nil)
		return []model.Address{}
	}

	list := a.client.DecodeAddressList(resp)
	a.setAddresses(list)

	if a.selection.SelectedAddress() == nil {
		if def, ok := soleDefault(list); ok {
			a.selection.SetSelectedAddress(def)
			a.log.Info("Default address auto-selected", "address_id", def.ID)
		}
	}

	return a.Addresses()
}

// Create persists a geocoded location pick as a new address. Coordinates
// are rounded to 7 decimal places to fit the server's fixed-point columns.
// On success the new address joins the list and becomes the selection; on
// failure local state is untouched.
func (a *Adapter) Create(ctx context.Context, customerID int64, pick model.LocationPick) (*model.Address, bool) {
	if customerID == 0 {
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Sign in required",
			Message: "You must sign in before adding an address",
		})
		return nil, false
	}

	title := sanitizer.TrimAndNormalize(pick.Title)
	if title == "" {
		title = "Selected location"
	}

	req := &model.AddressCreateRequest{
		Customer:  customerID,
		Title:     title,
		Address:   sanitizer.TrimAndNormalize(pick.Address),
		IsDefault: false,
	}
	if pick.Coordinates != nil {
		lat := roundCoordinate(pick.Coordinates.Lat)
		lng := roundCoordinate(pick.Coordinates.Lng)
		req.Latitude = &lat
		req.Longitude = &lng
	}

	if err := a.validate.Struct(req); err != nil {
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Invalid address",
			Message: translateFieldError(err),
		})
		return nil, false
	}

	resp, err := a.client.Create(ctx, req)
	if err != nil {
		a.log.Error("Failed to save address", "customer", customerID, "error", err)
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Failed to save address",
			Message: apperrors.Message(err, "Something went wrong while saving the address"),
		})
		return nil, false
	}

	saved, err := a.client.DecodeAddress(resp)
	if err != nil {
		a.log.Error("Failed to decode saved address", "error", err)
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Failed to save address",
			Message: "The server returned an unexpected response",
		})
		return nil, false
	}

	a.mu.Lock()
	a.addresses = append(a.addresses, *saved)
	a.mu.Unlock()
	a.selection.SetSelectedAddress(*saved)

	a.notifier.Notify(ui.Toast{
		Type:    ui.ToastSuccess,
		Title:   "Address added",
		Message: fmt.Sprintf("Address %q was added successfully", saved.Title),
	})
	return saved, true
}

// Delete asks for confirmation before issuing the request. Deleting the
// currently selected address clears the selection. A declined confirmation
// issues no request at all.
func (a *Adapter) Delete(ctx context.Context, id int64) bool {
	if !a.confirmer.Confirm("Are you sure you want to delete this address?") {
		return false
	}

	if _, err := a.client.Delete(ctx, id); err != nil {
		a.log.Error("Failed to delete address", "address_id", id, "error", err)
		a.notifier.Notify(ui.Toast{
			Type:    ui.ToastError,
			Title:   "Failed to delete address",
			Message: apperrors.Message(err, "Something went wrong while deleting the address"),
		})
		return false
	}

	a.mu.Lock()
	for i := range a.addresses {
		if a.addresses[i].ID == id {
			a.addresses = append(a.addresses[:i], a.addresses[i+1:]...)
			break
		}
	}
	a.mu.Unlock()

	if sel := a.selection.SelectedAddress(); sel != nil && sel.ID == id {
		a.selection.ClearSelectedAddress()
	}

	a.notifier.Notify(ui.Toast{
		Type:    ui.ToastSuccess,
		Title:   "Address deleted",
		Message: "The address was deleted successfully",
	})
	return true
}

// Addresses returns a copy of the loaded list.
func (a *Adapter) Addresses() []model.Address {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.Address, len(a.addresses))
	copy(out, a.addresses)
	return out
}

func (a *Adapter) setAddresses(list []model.Address) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addresses = list
}

// soleDefault returns the default address when exactly one is flagged.
func soleDefault(list []model.Address) (model.Address, bool) {
	var found model.Address
	count := 0
	for _, addr := range list {
		if addr.IsDefault {
			found = addr
			count++
		}
	}
	return found, count == 1
}

// roundCoordinate truncates to 7 decimal places, the server's fixed-point
// storage precision (max_digits=10, decimal_places=7).
func roundCoordinate(v float64) float64 {
	return math.Round(v*1e7) / 1e7
}

func translateFieldError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "The address could not be validated"
	}
	first := validationErrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", first.Field())
	case "min", "max":
		return fmt.Sprintf("%s has an invalid length", first.Field())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", first.Field())
	default:
		return fmt.Sprintf("%s is invalid", first.Field())
	}
}
