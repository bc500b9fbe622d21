package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// MicrosToCurrency converte valores em micros (Google Ads) para unidades
// decimais de moeda. A normalização acontece na borda do adapter.
func MicrosToCurrency(micros int64) float64 {
	return RoundWithTwoDecimalPlace(float64(micros) / 1_000_000)
}
