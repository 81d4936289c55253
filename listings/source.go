package listings

import (
	"context"
	"strconv"

	"beyt_client/api"
	"beyt_client/models"
)

// APISource fetches listing pages from the marketplace's properties
// endpoint.
type APISource struct {
	client *api.Client
}

func NewAPISource(client *api.Client) *APISource {
	return &APISource{client: client}
}

func (s *APISource) FetchPage(ctx context.Context, query Query, page int) (*models.ListingPage, error) {
	params := query.Params()
	params["page"] = strconv.Itoa(page)

	var result models.ListingPage
	if err := s.client.Get(ctx, api.RouteProperties, params, &result); err != nil {
		return nil, err
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return &result, nil
}
