package main

import (
	"context"
	"flag"
	"fmt"

	"glamora/internal/address"
	"glamora/internal/cart"
	"glamora/internal/catalog"
	"glamora/internal/coupon"
	"glamora/internal/wizard"
	"glamora/pkg/client"
	"glamora/pkg/config"
	"glamora/pkg/storage"
	"glamora/pkg/ui"
)

const ServiceName = "glamora"

// A connectivity check against the configured backend: loads the catalog,
// the customer's addresses and the persisted cart, and prints what a booking
// session would start from.
func main() {
	customerID := flag.Int64("customer", 0, "customer id to inspect addresses for")
	couponCode := flag.String("coupon", "", "coupon code to validate against the cart total")
	flag.Parse()

	cfg := config.Load(ServiceName)
	ctx := context.Background()

	snapshots, err := storage.New(cfg.SnapshotDir)
	if err != nil {
		cfg.Log.Fatal("Failed to open snapshot store", "error", err)
	}
	cartStore := cart.NewStore(snapshots, cfg.Log)

	httpClient := client.New(client.Options{
		BaseURL:      cfg.APIBaseURL,
		Token:        cfg.AuthToken,
		Timeout:      cfg.RequestTimeout,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Log:          cfg.Log,
	})

	services, categories := catalog.NewLoader(client.NewCatalogClient(httpClient), cfg.Log).Load(ctx)
	fmt.Printf("catalog: %d services, %d categories\n", len(services), len(categories))
	for _, svc := range services {
		fmt.Printf("  [%s] %s (%.2f, %d min)\n", svc.ID, svc.DisplayName(), svc.UnitPrice(), svc.DurationMinutes())
	}

	coupons := coupon.NewValidator(client.NewCouponClient(httpClient), cfg.Log)
	session := wizard.NewSession(cfg, cartStore, coupons, cfg.Log)
	session.Mount(wizard.MountOptions{})

	fmt.Printf("cart: %d items, total %.2f\n", cartStore.TotalItems(), cartStore.TotalPrice())
	fmt.Printf("session: current=%s expanded=%v progress=%d%%\n",
		session.Current(), session.Expanded(), session.Progress())

	if *customerID > 0 {
		adapter := address.NewAdapter(
			client.NewAddressClient(httpClient),
			session,
			ui.NopNotifier{},
			ui.StaticConfirmer(false),
			cfg.Log,
		)
		list := adapter.LoadForCustomer(ctx, *customerID)
		fmt.Printf("addresses for customer %d: %d\n", *customerID, len(list))
		for _, addr := range list {
			marker := " "
			if addr.IsDefault {
				marker = "*"
			}
			fmt.Printf(" %s [%d] %s: %s\n", marker, addr.ID, addr.Title, addr.Address)
		}
	}

	if *couponCode != "" {
		session.SetCouponCode(*couponCode)
		if err := session.ApplyCoupon(ctx); err != nil {
			fmt.Printf("coupon %q: %s\n", *couponCode, session.CouponError())
		} else {
			fmt.Printf("coupon %q: total %.2f\n", *couponCode, session.State().TotalPrice)
		}
	}
}
