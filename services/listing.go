package services

import (
	"context"
	"fmt"
	"log"

	"beyt_client/api"
	"beyt_client/models"
	"beyt_client/numerals"
)

// ListingService submits and manages the user's own listings.
type ListingService struct {
	client *api.Client
	media  *MediaService
}

func NewListingService(client *api.Client, media *MediaService) *ListingService {
	return &ListingService{client: client, media: media}
}

// BuildDraft fans a form submission out into the bilingual payload the
// server stores: every numeric field travels in both Latin and Arabic-Indic
// digits, and the description lands in the field matching its script.
func BuildDraft(in *models.DraftInput) (*models.ListingDraft, error) {
	if in.Location == nil {
		return nil, &api.ValidationError{Field: "location", Reason: "required"}
	}

	draft := &models.ListingDraft{
		Status:    in.Status,
		Location:  in.Location,
		Type:      in.Type,
		Amenities: in.Amenities,
		Images:    []string{},
	}

	draft.Price, draft.PriceArabic = numerals.Bilingual(in.Price)
	draft.Size, draft.SizeArabic = numerals.Bilingual(in.Area)
	draft.Bedrooms, draft.BedroomsArabic = numerals.Bilingual(in.Bedrooms)
	draft.Bathrooms, draft.BathroomsArabic = numerals.Bilingual(in.Bathrooms)

	// Free-text fields carry the typed text in both slots; the counterpart
	// language is filled in by the server's translation step.
	draft.Title = in.Title
	draft.TitleArabic = in.Title
	draft.Description = in.Description
	draft.DescriptionArabic = in.Description

	return draft, nil
}

// Create uploads the draft's images, then posts the listing.
func (s *ListingService) Create(ctx context.Context, in *models.DraftInput) (*models.Listing, error) {
	draft, err := BuildDraft(in)
	if err != nil {
		return nil, err
	}

	if len(in.ImagePaths) > 0 {
		urls, err := s.media.UploadAll(ctx, in.ImagePaths)
		if err != nil {
			return nil, fmt.Errorf("upload images: %w", err)
		}
		draft.Images = urls
	}

	var created models.Listing
	if err := s.client.Post(ctx, api.RouteProperties, draft, &created); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	log.Printf("services: listing created: %s", created.ID)
	return &created, nil
}

// Archive hides an owned listing from search without deleting it.
func (s *ListingService) Archive(ctx context.Context, listingID string) error {
	path := fmt.Sprintf("%s/%s", api.RouteProperties, listingID)
	body := map[string]bool{"archived": true}
	if err := s.client.Put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("archive listing %s: %w", listingID, err)
	}
	return nil
}
