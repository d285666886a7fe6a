package dataforseoclient

import (
	"context"

	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
)

const searchVolumePath = "/v3/keywords_data/google/search_volume/live"

func (c *DataForSEOClient) GetSearchVolume(
	ctx context.Context,
	request dataforseodomain.SearchVolumeRequest,
	credentials dataforseodomain.Credentials,
) (*dataforseodomain.SearchVolumeResult, error) {
	return fetchFirstResult[dataforseodomain.SearchVolumeResult](ctx, c, "search_volume", searchVolumePath, request, credentials)
}
