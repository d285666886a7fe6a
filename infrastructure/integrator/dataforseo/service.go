package dataforseo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/dataforseoclient"
	dataforseodomain "github.com/vfg2006/paid-search-advisor/infrastructure/integrator/dataforseo/domain"
	"github.com/vfg2006/paid-search-advisor/internal/config"
	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// quantidade de resultados orgânicos mantidos por keyword
const organicTopResults = 10

type DataForSEOIntegrator interface {
	CollectKeyword(ctx context.Context, keyword string, params dataforseodomain.CollectParams) (*domain.KeywordSnapshot, error)
}

type DataForSEOService struct {
	cfg    *config.Config
	Client dataforseoclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client dataforseoclient.Client) DataForSEOIntegrator {
	return &DataForSEOService{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

// CollectKeyword consulta anunciantes, SERP orgânica e volume de busca em paralelo.
// Falhas individuais são toleradas; só retorna erro quando os três endpoints falham.
func (s *DataForSEOService) CollectKeyword(ctx context.Context, keyword string, params dataforseodomain.CollectParams) (*domain.KeywordSnapshot, error) {
	location := params.Location
	if location == "" {
		location = s.cfg.DataForSEO.Location
	}
	language := params.Language
	if language == "" {
		language = s.cfg.DataForSEO.Language
	}

	serpRequest := dataforseodomain.SerpTaskRequest{
		Keyword:      keyword,
		LocationName: location,
		LanguageCode: language,
		Device:       s.cfg.DataForSEO.Device,
	}

	var (
		wg              sync.WaitGroup
		advertiserItems []dataforseodomain.SerpItem
		organicItems    []dataforseodomain.SerpItem
		volume          *dataforseodomain.SearchVolumeResult
		advertiserErr   error
		organicErr      error
		volumeErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		advertiserItems, advertiserErr = s.Client.GetAdvertisers(ctx, serpRequest, params.Credentials)
	}()
	go func() {
		defer wg.Done()
		organicRequest := serpRequest
		organicRequest.Depth = s.cfg.DataForSEO.OrganicDepth
		organicItems, organicErr = s.Client.GetOrganicResults(ctx, organicRequest, params.Credentials)
	}()
	go func() {
		defer wg.Done()
		volume, volumeErr = s.Client.GetSearchVolume(ctx, dataforseodomain.SearchVolumeRequest{
			Keywords:     []string{keyword},
			LocationName: location,
			LanguageCode: language,
		}, params.Credentials)
	}()
	wg.Wait()

	if advertiserErr != nil && organicErr != nil && volumeErr != nil {
		return nil, errors.Wrapf(volumeErr, "nenhum endpoint respondeu para a keyword %q", keyword)
	}

	fields := logrus.Fields{"keyword": keyword, "location": location}
	if advertiserErr != nil {
		logrus.WithFields(fields).WithError(advertiserErr).Warn("dataforseo: falha ao buscar anunciantes, seguindo sem anunciantes")
	}
	if organicErr != nil {
		logrus.WithFields(fields).WithError(organicErr).Warn("dataforseo: falha ao buscar SERP orgânica, seguindo sem posições")
	}
	if volumeErr != nil {
		logrus.WithFields(fields).WithError(volumeErr).Warn("dataforseo: falha ao buscar volume de busca, usando métricas padrão")
	}

	metrics, defaulted := toMetrics(volume)

	snapshot := &domain.KeywordSnapshot{
		Keyword:          keyword,
		Location:         location,
		Language:         language,
		Metrics:          metrics,
		MetricsDefaulted: defaulted,
		Advertisers:      toAdvertisers(advertiserItems),
		Organic:          toOrganicResults(organicItems),
		CollectedAt:      s.now(),
	}

	logrus.WithFields(logrus.Fields{
		"keyword":           keyword,
		"advertisers":       len(snapshot.Advertisers),
		"organic_results":   len(snapshot.Organic),
		"search_volume":     snapshot.Metrics.SearchVolume,
		"metrics_defaulted": defaulted,
	}).Debug("dataforseo: keyword coletada")

	return snapshot, nil
}

func toAdvertisers(items []dataforseodomain.SerpItem) []domain.Advertiser {
	advertisers := make([]domain.Advertiser, 0, len(items))
	for _, item := range items {
		if item.Type != dataforseodomain.ItemTypeAdsAdvertiser && item.Type != dataforseodomain.ItemTypeAdsMultiAccountAdvertiser {
			continue
		}

		advertisers = append(advertisers, domain.Advertiser{
			Title:        item.Title,
			AdvertiserID: item.AdvertiserID,
			Domain:       strings.ToLower(item.Domain),
			Verified:     item.Verified,
			Type:         item.Type,
		})
	}
	return advertisers
}

func toOrganicResults(items []dataforseodomain.SerpItem) []domain.OrganicResult {
	results := make([]domain.OrganicResult, 0, organicTopResults)
	for _, item := range items {
		if item.Type != dataforseodomain.ItemTypeOrganic || item.RankAbsolute <= 0 {
			continue
		}

		results = append(results, domain.OrganicResult{
			Rank:   item.RankAbsolute,
			Domain: strings.ToLower(item.Domain),
			URL:    item.URL,
			Title:  item.Title,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Rank < results[j].Rank
	})

	if len(results) > organicTopResults {
		results = results[:organicTopResults]
	}
	return results
}

// toMetrics converte o resultado de volume; sem resultado, usa domain.DefaultMetrics
func toMetrics(result *dataforseodomain.SearchVolumeResult) (domain.KeywordMetrics, bool) {
	if result == nil {
		return domain.DefaultMetrics, true
	}

	metrics := domain.KeywordMetrics{}
	if result.SearchVolume != nil && *result.SearchVolume > 0 {
		metrics.SearchVolume = *result.SearchVolume
	}
	if result.CPC != nil && *result.CPC > 0 {
		metrics.CPC = *result.CPC
	}
	if ratio, ok := result.Ratio(); ok {
		metrics.Competition = domain.NormalizeCompetition(ratio)
	}

	return metrics, false
}
