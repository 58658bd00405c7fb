package wizard

import (
	"context"
	"io"
	"testing"
	"time"

	"glamora/internal/cart"
	"glamora/internal/coupon"
	"glamora/pkg/apitest"
	"glamora/pkg/client"
	"glamora/pkg/config"
	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DayStart:            "09:00",
		DayEnd:              "18:00",
		SlotInterval:        30 * time.Minute,
		ConfirmationDismiss: time.Second,
		TeardownDelay:       time.Second,
	}
}

type fixture struct {
	session *Session
	cart    *cart.Store
	server  *apitest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})

	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)
	cartStore := cart.NewStore(snapshots, log)

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	httpClient := client.New(client.Options{
		BaseURL:      srv.URL,
		RetryBackoff: time.Millisecond,
		Log:          log,
	})
	coupons := coupon.NewValidator(client.NewCouponClient(httpClient), log)

	return &fixture{
		session: NewSession(testConfig(), cartStore, coupons, log),
		cart:    cartStore,
		server:  srv,
	}
}

func beautyService() model.Service {
	return model.Service{ID: "1", Name: "Beauty treatment", BasePrice: 200, Duration: 60}
}

func TestMountDefault(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})

	assert.Equal(t, SectionServices, f.session.Current())
	assert.Equal(t, []Section{SectionServices}, f.session.Expanded())
	assert.Equal(t, 0, f.session.Progress())
}

func TestMountPreselected(t *testing.T) {
	f := newFixture(t)
	svc := beautyService()
	f.session.Mount(MountOptions{Preselected: &svc})

	assert.Equal(t, SectionDateTime, f.session.Current())
	assert.Equal(t, []Section{SectionServices, SectionDateTime}, f.session.Expanded())
	assert.Equal(t, 200.0, f.session.State().TotalPrice)
	assert.Equal(t, 20, f.session.Progress())
}

func TestMountCartPath(t *testing.T) {
	f := newFixture(t)
	f.cart.AddToCart(model.Service{ID: "2", Name: "Hair care", Price: 300}, 2)
	f.session.Mount(MountOptions{})

	assert.Equal(t, SectionDateTime, f.session.Current())
	assert.Equal(t, []Section{SectionCart, SectionDateTime}, f.session.Expanded())
	require.NotNil(t, f.session.State().SelectedService)
	assert.Equal(t, "2", f.session.State().SelectedService.ID)
	assert.Equal(t, 600.0, f.session.State().TotalPrice)
}

func TestMountCartPathWinsOverOffer(t *testing.T) {
	f := newFixture(t)
	f.cart.AddToCart(model.Service{ID: "2", Name: "Hair care", Price: 300}, 1)
	f.session.Mount(MountOptions{Offer: &model.OfferData{ID: "offer-1", Name: "Spring deal", OriginalPrice: 500, DiscountedPrice: 350}})

	assert.False(t, f.session.State().IsOfferBooking)
	assert.Nil(t, f.session.State().OfferData)
	assert.Equal(t, []Section{SectionCart, SectionDateTime}, f.session.Expanded())
	assert.Equal(t, 300.0, f.session.State().TotalPrice)
}

func TestMountOfferPath(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{Offer: &model.OfferData{ID: "offer-1", Name: "Spring deal", OriginalPrice: 500, DiscountedPrice: 350}})

	assert.True(t, f.session.State().IsOfferBooking)
	assert.Equal(t, SectionOffer, f.session.Current())
	assert.Equal(t, []Section{SectionOffer, SectionDateTime}, f.session.Expanded())
	assert.Equal(t, 350.0, f.session.State().TotalPrice)
}

func TestSlotGrid(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})
	f.session.SelectService(beautyService())
	require.NoError(t, f.session.SelectDate(time.Now().AddDate(0, 0, 1)))

	slots := f.session.TimeSlots()
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
}

func TestSelectDateRequiresService(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})

	err := f.session.SelectDate(time.Now())
	assert.Error(t, err)
	assert.Nil(t, f.session.State().SelectedDate)
}

func TestSelectTimeRequiresDate(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})
	f.session.SelectService(beautyService())

	err := f.session.SelectTime("10:00")
	assert.Error(t, err)
}

func TestMonotonicExpansionThroughFullFlow(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})

	var snapshots [][]Section
	record := func() { snapshots = append(snapshots, f.session.Expanded()) }

	f.session.SelectService(beautyService())
	record()
	require.NoError(t, f.session.SelectDate(time.Now().AddDate(0, 0, 1)))
	record()
	require.NoError(t, f.session.SelectTime("10:30"))
	record()
	require.NoError(t, f.session.SelectAddress(model.Address{ID: 5, Title: "Home"}))
	record()
	require.NoError(t, f.session.SelectPayment(model.PaymentMethods()[0]))
	record()

	// Each step may only add sections, never remove them.
	for i := 1; i < len(snapshots); i++ {
		prev, curr := snapshots[i-1], snapshots[i]
		require.GreaterOrEqual(t, len(curr), len(prev))
		for j, sec := range prev {
			assert.Equal(t, sec, curr[j])
		}
	}

	assert.Equal(t, SectionConfirmation, f.session.Current())
	assert.True(t, f.session.IsExpanded(SectionServices))
	assert.True(t, f.session.IsExpanded(SectionPayment))
}

func TestExpandSectionRefusesLocked(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})

	assert.Error(t, f.session.ExpandSection(SectionPayment))
	assert.Error(t, f.session.ExpandSection(SectionConfirmation))
	assert.NoError(t, f.session.ExpandSection(SectionCart))
}

func TestProgressSaturation(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})
	assert.Equal(t, 0, f.session.Progress())

	f.session.SelectService(beautyService())
	assert.Equal(t, 20, f.session.Progress())

	require.NoError(t, f.session.SelectDate(time.Now().AddDate(0, 0, 1)))
	assert.Equal(t, 20, f.session.Progress())
	require.NoError(t, f.session.SelectTime("09:30"))
	assert.Equal(t, 40, f.session.Progress())

	require.NoError(t, f.session.SelectAddress(model.Address{ID: 1}))
	assert.Equal(t, 60, f.session.Progress())

	// The final milestone jumps straight to 100.
	require.NoError(t, f.session.SelectPayment(model.PaymentMethods()[0]))
	assert.Equal(t, 100, f.session.Progress())
}

func TestApplyCouponDiscountsTotal(t *testing.T) {
	f := newFixture(t)
	f.server.SeedCoupon(model.CouponRecord{ID: 1, Code: "SAVE5", Name: "Five percent", DiscountType: "percentage", DiscountValue: 5})

	svc := beautyService()
	f.session.Mount(MountOptions{Preselected: &svc})
	f.session.SetCouponCode("SAVE5")

	require.NoError(t, f.session.ApplyCoupon(context.Background()))

	assert.Equal(t, 190.0, f.session.State().TotalPrice)
	assert.Empty(t, f.session.CouponError())
	require.NotNil(t, f.session.State().CouponData)
	assert.Equal(t, 10.0, f.session.State().CouponData.DiscountAmount)
}

func TestApplyCouponFailureKeepsLastGood(t *testing.T) {
	f := newFixture(t)
	f.server.SeedCoupon(model.CouponRecord{ID: 1, Code: "SAVE5", DiscountType: "percentage", DiscountValue: 5})

	svc := beautyService()
	f.session.Mount(MountOptions{Preselected: &svc})

	f.session.SetCouponCode("SAVE5")
	require.NoError(t, f.session.ApplyCoupon(context.Background()))
	require.Equal(t, 190.0, f.session.State().TotalPrice)

	f.session.SetCouponCode("BOGUS")
	err := f.session.ApplyCoupon(context.Background())
	require.Error(t, err)

	// The applied coupon and total survive; only the error message changes.
	assert.NotEmpty(t, f.session.CouponError())
	require.NotNil(t, f.session.State().CouponData)
	assert.Equal(t, "SAVE5", f.session.State().CouponData.Code)
	assert.Equal(t, 190.0, f.session.State().TotalPrice)
}

func TestApplyCouponSuccessClearsError(t *testing.T) {
	f := newFixture(t)
	f.server.SeedCoupon(model.CouponRecord{ID: 1, Code: "SAVE5", DiscountType: "percentage", DiscountValue: 5})

	svc := beautyService()
	f.session.Mount(MountOptions{Preselected: &svc})

	f.session.SetCouponCode("BOGUS")
	require.Error(t, f.session.ApplyCoupon(context.Background()))
	require.NotEmpty(t, f.session.CouponError())

	f.session.SetCouponCode("SAVE5")
	require.NoError(t, f.session.ApplyCoupon(context.Background()))
	assert.Empty(t, f.session.CouponError())
}

func TestDiscountNeverPushesTotalNegative(t *testing.T) {
	f := newFixture(t)
	f.server.SeedCoupon(model.CouponRecord{ID: 9, Code: "HUGE", DiscountType: "fixed", DiscountValue: 1000})

	svc := model.Service{ID: "3", Name: "Makeup", Price: 100}
	f.session.Mount(MountOptions{Preselected: &svc})
	f.session.SetCouponCode("HUGE")

	require.NoError(t, f.session.ApplyCoupon(context.Background()))
	assert.Equal(t, 0.0, f.session.State().TotalPrice)
}

func TestRecalculateAfterCartMutation(t *testing.T) {
	f := newFixture(t)
	f.cart.AddToCart(model.Service{ID: "2", Name: "Hair care", Price: 300}, 1)
	f.session.Mount(MountOptions{})
	require.Equal(t, 300.0, f.session.State().TotalPrice)

	f.cart.UpdateQuantity("2", 3)
	f.session.RecalculateTotal()
	assert.Equal(t, 900.0, f.session.State().TotalPrice)
}

func TestSpecialRequestsSanitized(t *testing.T) {
	f := newFixture(t)
	f.session.SetSpecialRequests("  please   be\non time  ")
	assert.Equal(t, "please be on time", f.session.State().SpecialRequests)
}

func TestAddressSelectionSinkDoesNotAdvance(t *testing.T) {
	f := newFixture(t)
	f.session.Mount(MountOptions{})

	f.session.SetSelectedAddress(model.Address{ID: 7, Title: "Home", IsDefault: true})

	require.NotNil(t, f.session.SelectedAddress())
	assert.Equal(t, int64(7), f.session.SelectedAddress().ID)
	assert.False(t, f.session.IsExpanded(SectionPayment))
	assert.Equal(t, SectionServices, f.session.Current())

	f.session.ClearSelectedAddress()
	assert.Nil(t, f.session.SelectedAddress())
}

func TestCheckpointRestore(t *testing.T) {
	f := newFixture(t)
	svc := beautyService()
	f.session.Mount(MountOptions{
		Preselected: &svc,
		Customer:    model.CustomerInfo{Name: "Dana", Phone: "0501234567"},
	})
	require.NoError(t, f.session.SelectDate(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.session.SelectTime("11:00"))
	f.session.SetSpecialRequests("window seat")
	f.session.Checkpoint()

	// A fresh session over the same cart store simulates navigation to the
	// checkout route.
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	restored := NewSession(testConfig(), f.cart, nil, log)
	require.True(t, restored.Restore())

	state := restored.State()
	require.NotNil(t, state.SelectedService)
	assert.Equal(t, "1", state.SelectedService.ID)
	require.NotNil(t, state.SelectedDate)
	assert.Equal(t, "2026-09-14", state.SelectedDate.Format("2006-01-02"))
	assert.Equal(t, "11:00", state.SelectedTime)
	assert.Equal(t, "Dana", state.CustomerInfo.Name)
	assert.Equal(t, "window seat", state.SpecialRequests)
	assert.Equal(t, 200.0, state.TotalPrice)
	assert.Len(t, restored.TimeSlots(), 18)
}

func TestRestoreWithoutCheckpoint(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.session.Restore())
}

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		interval time.Duration
		count    int
		first    string
		last     string
	}{
		{"full day half hourly", "09:00", "18:00", 30 * time.Minute, 18, "09:00", "17:30"},
		{"hourly", "09:00", "12:00", time.Hour, 3, "09:00", "11:00"},
		{"end exclusive", "10:00", "10:30", 30 * time.Minute, 1, "10:00", "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := GenerateSlots(tt.start, tt.end, tt.interval)
			require.Len(t, slots, tt.count)
			assert.Equal(t, tt.first, slots[0])
			assert.Equal(t, tt.last, slots[len(slots)-1])
		})
	}
}
