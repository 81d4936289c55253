package services

import (
	"context"
	"fmt"

	"beyt_client/api"
	"beyt_client/models"
)

// UserService covers the dashboard's profile and saved/owned listing
// operations.
type UserService struct {
	client *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, update *models.ProfileUpdate) (*models.User, error) {
	var user models.User
	path := fmt.Sprintf("/users/%s", userID)
	if err := s.client.Put(ctx, path, update, &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

// MyListings returns the user's own properties, archived ones included.
func (s *UserService) MyListings(ctx context.Context, userID string) ([]models.Listing, error) {
	var page models.ListingPage
	params := map[string]string{"userId": userID, "includeArchived": "true"}
	if err := s.client.Get(ctx, api.RouteProperties, params, &page); err != nil {
		return nil, fmt.Errorf("fetch own listings: %w", err)
	}
	return page.Properties, nil
}

// SavedListings resolves the IDs on the user's saved list.
func (s *UserService) SavedListings(ctx context.Context, user *models.User) ([]models.Listing, error) {
	listings := make([]models.Listing, 0, len(user.Saved))
	for _, id := range user.Saved {
		var listing models.Listing
		path := fmt.Sprintf("%s/%s", api.RouteProperties, id)
		if err := s.client.Get(ctx, path, nil, &listing); err != nil {
			return nil, fmt.Errorf("fetch saved listing %s: %w", id, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}
