package analyzing

import (
	"sort"
	"strings"
	"unicode"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// rank máximo considerado "topo" ao contar posições orgânicas da marca
const organicTopDepth = 10

// rótulos de segundo nível que fazem parte do sufixo, como em brand.co.uk
var secondLevelLabels = map[string]bool{
	"co":  true,
	"com": true,
	"net": true,
	"org": true,
	"gov": true,
	"ac":  true,
}

// NormalizeKeywords remove espaços extras e itens vazios e descarta duplicadas sem diferenciar maiúsculas,
// mantendo a primeira ocorrência e a ordem original
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	normalized := make([]string, 0, len(keywords))

	for _, keyword := range keywords {
		keyword = strings.Join(strings.Fields(keyword), " ")
		if keyword == "" {
			continue
		}

		key := strings.ToLower(keyword)
		if seen[key] {
			continue
		}
		seen[key] = true
		normalized = append(normalized, keyword)
	}

	return normalized
}

// NormalizeDomain reduz URLs e domínios a host em minúsculas, sem esquema, caminho ou www.
func NormalizeDomain(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if i := strings.Index(value, "://"); i >= 0 {
		value = value[i+3:]
	}
	if i := strings.IndexAny(value, "/?#"); i >= 0 {
		value = value[:i]
	}
	if i := strings.LastIndex(value, ":"); i >= 0 {
		value = value[:i]
	}
	value = strings.TrimPrefix(value, "www.")
	return strings.Trim(value, ".")
}

// NormalizeDomains aplica NormalizeDomain e descarta vazios e repetidos
func NormalizeDomains(values []string) []string {
	seen := make(map[string]bool, len(values))
	domains := make([]string, 0, len(values))
	for _, value := range values {
		d := NormalizeDomain(value)
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		domains = append(domains, d)
	}
	return domains
}

// brandToken remove o sufixo do domínio: brandx.it -> brandx, brand-x.co.uk -> brand-x
func brandToken(brandDomain string) string {
	labels := strings.Split(NormalizeDomain(brandDomain), ".")
	if len(labels) > 1 {
		labels = labels[:len(labels)-1]
	}
	if len(labels) > 1 && secondLevelLabels[labels[len(labels)-1]] {
		labels = labels[:len(labels)-1]
	}
	return strings.Join(labels, ".")
}

// foldText converte para minúsculas e remove acentos
func foldText(value string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}
	return strings.ToLower(folded)
}

// compact remove separadores para que "brand x" e "brand-x" casem com brandx
func compact(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '.' || r == '_' {
			return -1
		}
		return r
	}, value)
}

// IsBrandKeyword indica se a keyword contém o nome de alguma das marcas informadas
func IsBrandKeyword(keyword string, brandDomains []string) bool {
	folded := foldText(keyword)
	compacted := compact(folded)

	for _, brandDomain := range brandDomains {
		token := foldText(brandToken(brandDomain))
		if token == "" {
			continue
		}

		if strings.Contains(folded, token) {
			return true
		}
		if t := compact(token); t != "" && strings.Contains(compacted, t) {
			return true
		}
	}

	return false
}

// matchesDomain aceita o próprio domínio da marca e seus subdomínios
func matchesDomain(resultDomain, brandDomain string) bool {
	resultDomain = NormalizeDomain(resultDomain)
	brandDomain = NormalizeDomain(brandDomain)
	if resultDomain == "" || brandDomain == "" {
		return false
	}
	return resultDomain == brandDomain || strings.HasSuffix(resultDomain, "."+brandDomain)
}

// OrganicPositionsFor retorna, em ordem crescente, as posições orgânicas ocupadas pelos domínios da marca
func OrganicPositionsFor(results []domain.OrganicResult, brandDomains []string) []int {
	positions := make([]int, 0)
	for _, result := range results {
		if result.Rank <= 0 || result.Rank > organicTopDepth {
			continue
		}

		for _, brandDomain := range brandDomains {
			if matchesDomain(result.Domain, brandDomain) {
				positions = append(positions, result.Rank)
				break
			}
		}
	}

	sort.Ints(positions)
	return positions
}

// BuildRecord converte o snapshot coletado no registro usado pelo classificador
func BuildRecord(snapshot *domain.KeywordSnapshot, brandDomains []string) (domain.KeywordMetricRecord, error) {
	record := domain.KeywordMetricRecord{
		Keyword:          snapshot.Keyword,
		SearchVolume:     snapshot.Metrics.SearchVolume,
		CPC:              snapshot.Metrics.CPC,
		Competition:      domain.NormalizeCompetition(snapshot.Metrics.Competition),
		AdvertiserCount:  len(snapshot.Advertisers),
		OrganicPositions: OrganicPositionsFor(snapshot.Organic, brandDomains),
		IsBrandKeyword:   IsBrandKeyword(snapshot.Keyword, brandDomains),
	}

	if err := record.Validate(); err != nil {
		return domain.KeywordMetricRecord{}, err
	}

	return record, nil
}
