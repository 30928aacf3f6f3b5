package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nbourbon/admin-obras-sub001/internal/model"
)

func TestFormatARS(t *testing.T) {
	tests := []struct {
		want   string
		amount float64
	}{
		{"AR$ 0,00", 0},
		{"AR$ 12,50", 12.5},
		{"AR$ 1.234,56", 1234.56},
		{"AR$ 1.234.567,89", 1234567.89},
		{"AR$ -9.800,00", -9800},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatARS(tt.amount))
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "U$D 1,234.56", FormatUSD(1234.56))
	assert.Equal(t, "U$D 10.00", FormatUSD(10))
	assert.Equal(t, "U$D -0.99", FormatUSD(-0.99))
}

func TestFormatByMode(t *testing.T) {
	tests := []struct {
		name string
		mode model.CurrencyMode
		want string
	}{
		{"ars only", model.CurrencyARS, "AR$ 35.000,00"},
		{"usd only", model.CurrencyUSD, "U$D 100.00"},
		{"dual shows both", model.DualCurrency, "AR$ 35.000,00 / U$D 100.00"},
		{"unknown mode falls back to dual", model.CurrencyMode(""), "AR$ 35.000,00 / U$D 100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.mode, 35000, 100))
		})
	}
}
