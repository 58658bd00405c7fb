package model

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is the normalized client-side shape. At most one address per
// customer carries IsDefault; the server enforces that, we trust it.
type Address struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Address     string      `json:"address"`
	Coordinates Coordinates `json:"coordinates"`
	IsDefault   bool        `json:"isDefault"`
}

// AddressRecord is the wire shape the backend serves and accepts.
type AddressRecord struct {
	ID        int64    `json:"id"`
	Customer  int64    `json:"customer,omitempty"`
	Title     string   `json:"title"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"is_default"`
}

// Normalize maps a wire record into the internal shape.
func (r AddressRecord) Normalize() Address {
	a := Address{
		ID:        r.ID,
		Title:     r.Title,
		Address:   r.Address,
		IsDefault: r.IsDefault,
	}
	if r.Latitude != nil {
		a.Coordinates.Lat = *r.Latitude
	}
	if r.Longitude != nil {
		a.Coordinates.Lng = *r.Longitude
	}
	return a
}

// AddressCreateRequest is the create payload. Coordinates must already be
// rounded to 7 decimal places (fixed-point storage constraint server-side).
type AddressCreateRequest struct {
	Customer  int64    `json:"customer" validate:"required,gt=0"`
	Title     string   `json:"title" validate:"required,min=1,max=100"`
	Address   string   `json:"address" validate:"required,min=1"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	IsDefault bool     `json:"is_default"`
}

// LocationPick is what the map/geocode picker hands the address adapter.
type LocationPick struct {
	Title       string       `json:"title"`
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates"`
}
