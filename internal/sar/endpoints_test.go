package sar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingResolvesHrefs(t *testing.T) {
	t.Parallel()

	eps := Endpoints{Base: "https://www.ana.gov.br/sar0"}

	tests := []struct {
		name string
		href string
		want string
	}{
		{"absolute path", "/sar0/MedicaoSin", "https://www.ana.gov.br/sar0/MedicaoSin"},
		{"relative", "MedicaoSin", "https://www.ana.gov.br/MedicaoSin"},
		{"full url", "https://example.com/x", "https://example.com/x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := eps.Listing(tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeriesURL(t *testing.T) {
	t.Parallel()

	eps := Endpoints{Base: "https://www.ana.gov.br/sar0/"}
	assert.Equal(t,
		"https://www.ana.gov.br/sar0/MedicaoSerieHistorica?codigoRes=19086",
		eps.Series("19086"))
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"SIN", "sin"},
		{"19086", "19086"},
		{"Nordeste e Semiárido", "nordeste-e-semi-rido"},
		{"  CANTAREIRA  ", "cantareira"},
		{"a//b", "a-b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.in), "Slug(%q)", tt.in)
	}
}
