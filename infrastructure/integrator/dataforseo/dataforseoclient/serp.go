package dataforseoclient

import (
	"context"

	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
)

const (
	advertisersPath = "/v3/serp/google/ads_advertisers/live/advanced"
	organicPath     = "/v3/serp/google/organic/live/advanced"
)

func (c *DataForSEOClient) GetAdvertisers(
	ctx context.Context,
	request dataforseodomain.SerpTaskRequest,
	credentials dataforseodomain.Credentials,
) ([]dataforseodomain.SerpItem, error) {
	result, err := fetchFirstResult[dataforseodomain.SerpResult](ctx, c, "ads_advertisers", advertisersPath, request, credentials)
	if err != nil || result == nil {
		return nil, err
	}

	return result.Items, nil
}

func (c *DataForSEOClient) GetOrganicResults(
	ctx context.Context,
	request dataforseodomain.SerpTaskRequest,
	credentials dataforseodomain.Credentials,
) ([]dataforseodomain.SerpItem, error) {
	if request.Depth == 0 {
		request.Depth = c.config.DataForSEO.OrganicDepth
	}

	result, err := fetchFirstResult[dataforseodomain.SerpResult](ctx, c, "organic", organicPath, request, credentials)
	if err != nil || result == nil {
		return nil, err
	}

	return result.Items, nil
}
