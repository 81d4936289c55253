package models

// ListingDraft is the bilingual submission payload for a new property.
// Numeric fields travel twice, once in Latin digits and once in Arabic-Indic
// digits; the listing service fills whichever side the user did not type.
type ListingDraft struct {
	Status            string    `json:"status"`
	Price             string    `json:"price"`
	PriceArabic       string    `json:"priceArabic"`
	Bedrooms          string    `json:"bedrooms"`
	BedroomsArabic    string    `json:"bedroomsArabic"`
	Bathrooms         string    `json:"bathrooms"`
	BathroomsArabic   string    `json:"bathroomsArabic"`
	Location          *Location `json:"location"`
	Size              string    `json:"size"`
	SizeArabic        string    `json:"sizeArabic"`
	Type              string    `json:"type"`
	Amenities         []string  `json:"amenities"`
	UserID            string    `json:"userId"`
	Title             string    `json:"title"`
	TitleArabic       string    `json:"titleArabic"`
	Description       string    `json:"description"`
	DescriptionArabic string    `json:"descriptionArabic"`
	Images            []string  `json:"images"`
}

// DraftInput is what the add-property form collects before the bilingual
// fan-out happens.
type DraftInput struct {
	Location    *Location
	Type        string
	Status      string
	Price       string
	Bedrooms    string
	Bathrooms   string
	Area        string
	Amenities   []string
	Title       string
	Description string
	ImagePaths  []string
}
