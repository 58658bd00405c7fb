// Package apitest provides an in-process fake of the salon backend for
// package tests: addresses, coupon validation, bookings and the read-only
// catalog, with per-route failure injection and hit counting.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"glamora/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Envelope shapes the address list endpoint can serve.
const (
	ShapeBare      = "bare"
	ShapeResults   = "results"
	ShapeAddresses = "addresses"
)

type failure struct {
	remaining int
	status    int
	message   string
}

type Server struct {
	URL string

	mu            sync.Mutex
	addresses     map[int64]model.AddressRecord
	nextAddressID int64
	coupons       map[string]model.CouponRecord
	bookings      []model.BookingRequest
	nextBookingID int64
	services      []model.Service
	categories    []model.ServiceCategory
	listShape     string
	hits          map[string]int
	failures      map[string]*failure

	srv *httptest.Server
}

func NewServer() *Server {
	s := &Server{
		addresses:     make(map[int64]model.AddressRecord),
		nextAddressID: 1,
		coupons:       make(map[string]model.CouponRecord),
		nextBookingID: 1,
		listShape:     ShapeBare,
		hits:          make(map[string]int),
		failures:      make(map[string]*failure),
	}

	router := httprouter.New()
	router.GET("/api/addresses/", s.listAddresses)
	router.POST("/api/addresses/", s.createAddress)
	router.DELETE("/api/addresses/:id/", s.deleteAddress)
	router.POST("/api/validate-coupon/", s.validateCoupon)
	router.POST("/api/bookings/", s.createBooking)
	router.GET("/api/services/", s.listServices)
	router.GET("/api/service-categories/", s.listCategories)

	s.srv = httptest.NewServer(router)
	s.URL = s.srv.URL
	return s
}

func (s *Server) Close() {
	s.srv.Close()
}

// --- Fixtures and knobs ---

func (s *Server) SetListShape(shape string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listShape = shape
}

func (s *Server) SeedAddress(record model.AddressRecord) model.AddressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == 0 {
		record.ID = s.nextAddressID
	}
	if record.ID >= s.nextAddressID {
		s.nextAddressID = record.ID + 1
	}
	s.addresses[record.ID] = record
	return record
}

func (s *Server) SeedCoupon(record model.CouponRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupons[record.Code] = record
}

func (s *Server) SeedServices(services []model.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = services
}

func (s *Server) SeedCategories(categories []model.ServiceCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// FailNext makes the named route fail n times with the given status before
// recovering. Route keys look like "DELETE /api/addresses/:id/".
func (s *Server) FailNext(route string, n, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = &failure{remaining: n, status: status, message: message}
}

// Hits reports how many requests reached the named route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Bookings returns a copy of every booking payload accepted so far.
func (s *Server) Bookings() []model.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.BookingRequest, len(s.bookings))
	copy(out, s.bookings)
	return out
}

// Addresses returns a copy of the current address table.
func (s *Server) Addresses() []model.AddressRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.AddressRecord, 0, len(s.addresses))
	for _, r := range s.addresses {
		out = append(out, r)
	}
	return out
}

// track counts the hit and reports whether an injected failure fired.
// Callers must hold s.mu.
func (s *Server) track(w http.ResponseWriter, route string) bool {
	s.hits[route]++
	if f, ok := s.failures[route]; ok && f.remaining > 0 {
		f.remaining--
		writeJSON(w, f.status, map[string]string{"error": f.message})
		return true
	}
	return false
}

// --- Handlers ---

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "GET /api/addresses/") {
		return
	}

	customer, _ := strconv.ParseInt(r.URL.Query().Get("customer"), 10, 64)
	records := make([]model.AddressRecord, 0)
	for _, rec := range s.addresses {
		if rec.Customer == customer {
			records = append(records, rec)
		}
	}

	switch s.listShape {
	case ShapeResults:
		writeJSON(w, http.StatusOK, map[string]any{"results": records})
	case ShapeAddresses:
		writeJSON(w, http.StatusOK, map[string]any{"addresses": records})
	default:
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *Server) createAddress(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "POST /api/addresses/") {
		return
	}

	var req model.AddressCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed address payload"})
		return
	}

	record := model.AddressRecord{
		ID:        s.nextAddressID,
		Customer:  req.Customer,
		Title:     req.Title,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	}
	s.nextAddressID++
	s.addresses[record.ID] = record
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) deleteAddress(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "DELETE /api/addresses/:id/") {
		return
	}

	id, err := strconv.ParseInt(ps.ByName("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid address id"})
		return
	}
	if _, ok := s.addresses[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "address not found"})
		return
	}
	delete(s.addresses, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) validateCoupon(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "POST /api/validate-coupon/") {
		return
	}

	var req model.CouponValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed coupon payload"})
		return
	}

	record, ok := s.coupons[req.Code]
	if !ok {
		writeJSON(w, http.StatusOK, model.CouponValidateResponse{
			Valid:  false,
			Errors: map[string][]string{"code": {fmt.Sprintf("coupon %q does not exist", req.Code)}},
		})
		return
	}

	discount := record.DiscountValue
	if record.DiscountType == "percentage" {
		discount = req.Amount * record.DiscountValue / 100
	}
	writeJSON(w, http.StatusOK, model.CouponValidateResponse{
		Valid:          true,
		Coupon:         &record,
		DiscountAmount: discount,
	})
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "POST /api/bookings/") {
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed booking payload"})
		return
	}

	s.bookings = append(s.bookings, req)
	confirmation := model.BookingConfirmation{ID: s.nextBookingID, Status: "pending"}
	s.nextBookingID++
	writeJSON(w, http.StatusCreated, confirmation)
}

func (s *Server) listServices(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "GET /api/services/") {
		return
	}
	writeJSON(w, http.StatusOK, s.services)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.track(w, "GET /api/service-categories/") {
		return
	}
	writeJSON(w, http.StatusOK, s.categories)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
