package model

// CartItem is a provisional service selection. Price is a snapshot taken
// when the item entered the cart; it is never re-fetched.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Duration    int     `json:"duration"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
}

// NewCartItem snapshots a catalog service into a cart line.
func NewCartItem(svc Service, quantity int) CartItem {
	return CartItem{
		ID:          svc.ID,
		Name:        svc.DisplayName(),
		Description: svc.Description,
		Price:       svc.UnitPrice(),
		Image:       svc.Image,
		Duration:    svc.DurationMinutes(),
		Category:    svc.Category,
		Quantity:    quantity,
	}
}

// AsService converts a cart line back into a service shape, used when the
// wizard seeds its selection from the cart path.
func (c CartItem) AsService() Service {
	return Service{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Image:       c.Image,
		Duration:    c.Duration,
		Category:    c.Category,
	}
}
