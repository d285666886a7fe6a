package recommending

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vfg2006/paid-search-advisor/internal/domain"
)

var csvHeader = []string{"Keyword", "Advertisers", "CPC", "Competition", "Volume", "Recommendation", "Budget"}

// WriteCSV escreve o cabeçalho e uma linha por keyword, na ordem recebida.
// Linhas terminam com "\n", inclusive a última.
func WriteCSV(w io.Writer, classified []domain.ClassifiedKeyword) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho do CSV: %w", err)
	}

	for _, keyword := range classified {
		if err := writer.Write(csvRow(keyword)); err != nil {
			return fmt.Errorf("erro ao escrever linha do CSV para %q: %w", keyword.Keyword, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV retorna o CSV completo como string
func ExportCSV(classified []domain.ClassifiedKeyword) (string, error) {
	var buffer bytes.Buffer
	if err := WriteCSV(&buffer, classified); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func csvRow(keyword domain.ClassifiedKeyword) []string {
	return []string{
		keyword.Keyword,
		strconv.Itoa(keyword.AdvertiserCount),
		strconv.FormatFloat(keyword.CPC, 'f', 2, 64),
		formatPercentage(keyword.Competition),
		strconv.Itoa(keyword.SearchVolume),
		keyword.Recommendation.String(),
		strconv.FormatFloat(keyword.EstimatedMonthlyBudget, 'f', 2, 64),
	}
}

func formatPercentage(ratio float64) string {
	return strconv.FormatFloat(math.Round(ratio*100), 'f', 0, 64) + "%"
}
