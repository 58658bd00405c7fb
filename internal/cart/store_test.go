package cart

import (
	"io"
	"testing"

	"glamora/pkg/logger"
	"glamora/pkg/model"
	"glamora/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *storage.Store) {
	t.Helper()
	snapshots, err := storage.New(t.TempDir())
	require.NoError(t, err)
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	return NewStore(snapshots, log), snapshots
}

func svc(id string, price float64) model.Service {
	return model.Service{ID: id, Name: "service " + id, Price: price, Duration: 60}
}

func TestAddToCartIncrementsExisting(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddToCart(svc("s1", 100), 1)
	store.AddToCart(svc("s1", 100), 1)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 200.0, store.TotalPrice())
}

func TestAddToCartSnapshotsPriceFallback(t *testing.T) {
	tests := []struct {
		name     string
		service  model.Service
		expected float64
	}{
		{"price wins", model.Service{ID: "a", Price: 120, BasePrice: 90, PriceMin: 50}, 120},
		{"basePrice next", model.Service{ID: "b", BasePrice: 90, PriceMin: 50}, 90},
		{"price_min last", model.Service{ID: "c", PriceMin: 50}, 50},
		{"zero when nothing set", model.Service{ID: "d"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			store.AddToCart(tt.service, 1)
			items := store.Items()
			require.Len(t, items, 1)
			assert.Equal(t, tt.expected, items[0].Price)
		})
	}
}

func TestToggleCartIsIdempotentPair(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(svc("keep", 10), 1)

	store.ToggleCart(svc("s2", 50))
	assert.True(t, store.IsInCart("s2"))

	store.ToggleCart(svc("s2", 50))
	assert.False(t, store.IsInCart("s2"))
	assert.True(t, store.IsInCart("keep"))
	assert.Equal(t, 1, store.TotalItems())
}

func TestToggleCartRemovesEntirelyRegardlessOfQuantity(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(svc("s3", 40), 5)

	store.ToggleCart(svc("s3", 40))

	assert.False(t, store.IsInCart("s3"))
	assert.Equal(t, 0, store.TotalItems())
}

func TestUpdateQuantityFloor(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		store, _ := newTestStore(t)
		store.AddToCart(svc("s1", 25), 3)

		store.UpdateQuantity("s1", q)

		assert.False(t, store.IsInCart("s1"), "quantity %d should remove the line", q)
		assert.Equal(t, 0, store.ItemQuantity("s1"))
	}
}

func TestTotalPriceInvariant(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddToCart(svc("a", 100), 2)
	store.AddToCart(svc("b", 30), 1)
	store.UpdateQuantity("b", 4)
	store.ToggleCart(svc("c", 7))
	store.RemoveFromCart("a")

	// b: 30*4, c: 7*1
	assert.Equal(t, 127.0, store.TotalPrice())
	assert.Equal(t, 5, store.TotalItems())
}

func TestPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	snapshots, err := storage.New(dir)
	require.NoError(t, err)
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})

	first := NewStore(snapshots, log)
	first.AddToCart(svc("s1", 100), 2)
	first.AddToCart(svc("s2", 45), 1)

	// A fresh store over the same directory simulates a reload.
	second := NewStore(snapshots, log)

	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, first.TotalItems(), second.TotalItems())
	assert.Equal(t, first.TotalPrice(), second.TotalPrice())
}

func TestBookingScratchSurvivesCartClear(t *testing.T) {
	store, snapshots := newTestStore(t)

	store.AddToCart(svc("s1", 100), 1)
	scratch := &model.BookingScratch{Time: "10:30", SpecialRequests: "quiet room"}
	store.UpdateBookingData(scratch)

	store.ClearCart()

	assert.Empty(t, store.Items())
	require.NotNil(t, store.BookingData())
	assert.Equal(t, "10:30", store.BookingData().Time)

	// And the scratch snapshot is still on disk for the next process.
	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	reloaded := NewStore(snapshots, log)
	require.NotNil(t, reloaded.BookingData())
	assert.Equal(t, "quiet room", reloaded.BookingData().SpecialRequests)
}

func TestClearBookingDataLeavesCart(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddToCart(svc("s1", 60), 1)
	store.UpdateBookingData(&model.BookingScratch{Time: "09:00"})

	store.ClearBookingData()

	assert.Nil(t, store.BookingData())
	assert.True(t, store.IsInCart("s1"))
}

func TestClearAllPurgesBothSlots(t *testing.T) {
	store, snapshots := newTestStore(t)
	store.AddToCart(svc("s1", 60), 1)
	store.UpdateBookingData(&model.BookingScratch{Time: "09:00"})

	store.ClearAll()

	assert.Empty(t, store.Items())
	assert.Nil(t, store.BookingData())

	log := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	reloaded := NewStore(snapshots, log)
	assert.Empty(t, reloaded.Items())
	assert.Nil(t, reloaded.BookingData())
}
