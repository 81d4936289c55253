package models

import "time"

// Listing is a property record as the marketplace API returns it. The feed
// treats it as pass-through data keyed by ID.
type Listing struct {
	ID                string    `json:"_id"`
	Title             string    `json:"title"`
	TitleArabic       string    `json:"titleArabic"`
	Description       string    `json:"description"`
	DescriptionArabic string    `json:"descriptionArabic"`
	Price             string    `json:"price"`
	PriceArabic       string    `json:"priceArabic"`
	Bedrooms          string    `json:"bedrooms"`
	BedroomsArabic    string    `json:"bedroomsArabic"`
	Bathrooms         string    `json:"bathrooms"`
	BathroomsArabic   string    `json:"bathroomsArabic"`
	Size              string    `json:"size"`
	SizeArabic        string    `json:"sizeArabic"`
	Type              string    `json:"type"`
	Status            string    `json:"status"`
	Location          *Location `json:"location"`
	Amenities         []string  `json:"amenities"`
	Images            []string  `json:"images"`
	UserID            string    `json:"userId"`
	Archived          bool      `json:"archived"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Key returns the identity used to de-duplicate feed rows.
func (l *Listing) Key() string {
	return l.ID
}

// ListingPage is the envelope of the paginated listings endpoint.
type ListingPage struct {
	Properties []Listing `json:"properties"`
	TotalPages int       `json:"totalPages"`
}

// Location is a city entry from the locations endpoint, also embedded in
// listings.
type Location struct {
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	PropertyCount int     `json:"propertyCount"`
}
