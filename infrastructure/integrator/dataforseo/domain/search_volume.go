package dataforseodomain

import (
	"bytes"
	"encoding/json"
	"strings"
)

type SearchVolumeRequest struct {
	Keywords     []string `json:"keywords"`
	LocationName string   `json:"location_name"`
	LanguageCode string   `json:"language_code"`
}

type SearchVolumeResult struct {
	Keyword          string      `json:"keyword"`
	SearchVolume     *int        `json:"search_volume"`
	CPC              *float64    `json:"cpc"`
	Competition      Competition `json:"competition"`
	CompetitionIndex *int        `json:"competition_index"`
}

// Competition aceita tanto o valor numérico quanto o nível LOW/MEDIUM/HIGH
type Competition struct {
	Value *float64
	Level string
}

func (c *Competition) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var level string
		if err := json.Unmarshal(data, &level); err != nil {
			return err
		}
		c.Level = strings.ToUpper(strings.TrimSpace(level))
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	c.Value = &value
	return nil
}

// levelValues segue a escala usada para níveis textuais de concorrência
var levelValues = map[string]float64{
	"LOW":    0.3,
	"MEDIUM": 0.5,
	"HIGH":   0.8,
}

// Ratio retorna a concorrência bruta do resultado, antes da normalização.
// A ordem de preferência é competition_index, valor numérico e nível textual.
func (r SearchVolumeResult) Ratio() (float64, bool) {
	if r.CompetitionIndex != nil {
		return float64(*r.CompetitionIndex) / 100, true
	}
	if r.Competition.Value != nil {
		return *r.Competition.Value, true
	}
	if value, ok := levelValues[r.Competition.Level]; ok {
		return value, true
	}
	return 0, false
}
