// Package catalog reads the service catalog. The core consumes it but does
// not own it; failures degrade to a built-in fallback list so the wizard's
// services section always has something to show.
package catalog

import (
	"context"
	"strings"
	"sync"

	"glamora/pkg/client"
	"glamora/pkg/logger"
	"glamora/pkg/model"
)

type Loader struct {
	client *client.CatalogClient
	log    *logger.Logger
}

func NewLoader(c *client.CatalogClient, log *logger.Logger) *Loader {
	return &Loader{client: c, log: log}
}

// Load fetches services and categories in parallel. A failed or empty
// services fetch yields the fallback list; a failed categories fetch
// yields an empty slice.
func (l *Loader) Load(ctx context.Context) ([]model.Service, []model.ServiceCategory) {
	var services []model.Service
	var categories []model.ServiceCategory
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		resp, err := l.client.Services(ctx)
		if err != nil {
			l.log.Error("Failed to load services", "error", err)
			return
		}
		list, err := l.client.DecodeServices(resp)
		if err != nil {
			l.log.Error("Failed to decode services", "error", err)
			return
		}
		services = list
	}()

	go func() {
		defer wg.Done()
		resp, err := l.client.ServiceCategories(ctx)
		if err != nil {
			l.log.Error("Failed to load service categories", "error", err)
			return
		}
		list, err := l.client.DecodeCategories(resp)
		if err != nil {
			l.log.Error("Failed to decode service categories", "error", err)
			return
		}
		categories = list
	}()

	wg.Wait()

	if len(services) == 0 {
		l.log.Warn("Service catalog unavailable, using fallback list")
		services = FallbackServices()
	}
	if categories == nil {
		categories = []model.ServiceCategory{}
	}
	return services, categories
}

// FallbackServices is shown when the catalog endpoint is unreachable.
func FallbackServices() []model.Service {
	return []model.Service{
		{ID: "1", Name: "Beauty treatment", Description: "Professional beauty treatment", BasePrice: 500, Duration: 60},
		{ID: "2", Name: "Hair care", Description: "Advanced hair care services", BasePrice: 300, Duration: 90},
		{ID: "3", Name: "Makeup", Description: "Professional makeup artistry", BasePrice: 400, Duration: 120},
	}
}

// Preselect resolves a deep-linked service by id first, then by
// case-insensitive name.
func Preselect(services []model.Service, id, name string) *model.Service {
	if id != "" {
		for i := range services {
			if services[i].ID == id {
				return &services[i]
			}
		}
	}
	if name != "" {
		for i := range services {
			if strings.EqualFold(services[i].DisplayName(), name) {
				return &services[i]
			}
		}
	}
	return nil
}
