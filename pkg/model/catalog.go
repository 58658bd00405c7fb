package model

// Service is a catalog record as served by the backend. Price fields are
// inconsistent across catalog endpoints, hence the three variants.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price,omitempty"`
	BasePrice   float64 `json:"basePrice,omitempty"`
	PriceMin    float64 `json:"price_min,omitempty"`
	Duration    int     `json:"duration"`
	Category    string  `json:"category,omitempty"`
}

// UnitPrice resolves the price fallback chain: price, then basePrice,
// then price_min, then zero.
func (s *Service) UnitPrice() float64 {
	switch {
	case s.Price > 0:
		return s.Price
	case s.BasePrice > 0:
		return s.BasePrice
	case s.PriceMin > 0:
		return s.PriceMin
	default:
		return 0
	}
}

// DisplayName prefers name over title, matching catalog responses that
// populate only one of the two.
func (s *Service) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Title
}

// DurationMinutes falls back to a one-hour default for catalog records
// missing a duration.
func (s *Service) DurationMinutes() int {
	if s.Duration > 0 {
		return s.Duration
	}
	return 60
}

type ServiceCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
