package dataforseodomain

const (
	ItemTypeOrganic                   = "organic"
	ItemTypeAdsAdvertiser             = "ads_advertiser"
	ItemTypeAdsMultiAccountAdvertiser = "ads_multi_account_advertiser"
)

type SerpTaskRequest struct {
	Keyword      string `json:"keyword"`
	LocationName string `json:"location_name"`
	LanguageCode string `json:"language_code"`
	Device       string `json:"device,omitempty"`
	Depth        int    `json:"depth,omitempty"`
}

type SerpResult struct {
	Keyword      string     `json:"keyword"`
	CheckURL     string     `json:"check_url"`
	ItemsCount   int        `json:"items_count"`
	ItemTypes    []string   `json:"item_types"`
	Items        []SerpItem `json:"items"`
	SeResultsCnt int64      `json:"se_results_count"`
}

// SerpItem cobre os campos usados dos itens orgânicos e de anunciantes
type SerpItem struct {
	Type           string `json:"type"`
	RankGroup      int    `json:"rank_group"`
	RankAbsolute   int    `json:"rank_absolute"`
	Domain         string `json:"domain"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	AdvertiserID   string `json:"advertiser_id"`
	Verified       bool   `json:"verified"`
	ApproxAdsCount int    `json:"approx_ads_count"`
}
