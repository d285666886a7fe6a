package utils

import "math"

// RoundCents arredonda valores monetários para centavos
func RoundCents(value float64) float64 {
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		// evita -0 nas respostas
		return 0
	}
	return rounded
}
