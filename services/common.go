package services

import (
	"context"
	"fmt"

	"beyt_client/api"
	"beyt_client/models"
)

// CommonDataService fetches the reference data the filter bar and the
// add-property form feed on: known locations and property types.
type CommonDataService struct {
	client *api.Client
}

func NewCommonDataService(client *api.Client) *CommonDataService {
	return &CommonDataService{client: client}
}

func (s *CommonDataService) Locations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	if err := s.client.Get(ctx, api.RouteLocations, nil, &locations); err != nil {
		return nil, fmt.Errorf("fetch locations: %w", err)
	}
	return locations, nil
}

func (s *CommonDataService) PropertyTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := s.client.Get(ctx, api.RoutePropertyTypes, nil, &types); err != nil {
		return nil, fmt.Errorf("fetch property types: %w", err)
	}
	return types, nil
}
