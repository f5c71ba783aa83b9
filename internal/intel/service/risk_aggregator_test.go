package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-intel-scryper/internal/entity"
)

func TestAggregateLegalExposure_Empty(t *testing.T) {
	assert.Nil(t, AggregateLegalExposure(nil, 1_000_000_000))
	assert.Nil(t, AggregateLegalExposure([]entity.LegalProceeding{}, 0))
}

func TestAggregateLegalExposure_RevenueBasedLevels(t *testing.T) {
	tests := []struct {
		name         string
		exposure     float64
		revenue      float64
		wantLevel    string
		wantMaterial bool
	}{
		{name: "above 5 percent is critical", exposure: 60_000_000, revenue: 1_000_000_000, wantLevel: entity.RiskLevelCritical, wantMaterial: true},
		{name: "above 2 percent is high", exposure: 30_000_000, revenue: 1_000_000_000, wantLevel: entity.RiskLevelHigh, wantMaterial: true},
		{name: "above 1 percent is medium", exposure: 15_000_000, revenue: 1_000_000_000, wantLevel: entity.RiskLevelMedium, wantMaterial: true},
		{name: "below 1 percent is low", exposure: 5_000_000, revenue: 1_000_000_000, wantLevel: entity.RiskLevelLow, wantMaterial: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proceedings := []entity.LegalProceeding{{AmountInDollars: tt.exposure}}

			summary := AggregateLegalExposure(proceedings, tt.revenue)
			require.NotNil(t, summary)
			assert.Equal(t, tt.wantLevel, summary.RiskLevel)
			assert.Equal(t, tt.wantMaterial, summary.IsMaterial)
			assert.True(t, summary.RevenueBased)
			assert.Equal(t, tt.exposure, summary.TotalExposure)
		})
	}
}

func TestAggregateLegalExposure_AbsoluteFallback(t *testing.T) {
	tests := []struct {
		name      string
		exposure  float64
		wantLevel string
	}{
		{name: "over 100M is high", exposure: 150_000_000, wantLevel: entity.RiskLevelHigh},
		{name: "over 10M is medium", exposure: 50_000_000, wantLevel: entity.RiskLevelMedium},
		{name: "small exposure is low", exposure: 5_000_000, wantLevel: entity.RiskLevelLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proceedings := []entity.LegalProceeding{{AmountInDollars: tt.exposure}}

			summary := AggregateLegalExposure(proceedings, 0)
			require.NotNil(t, summary)
			assert.Equal(t, tt.wantLevel, summary.RiskLevel)
			assert.False(t, summary.RevenueBased)
		})
	}
}

func TestAggregateLegalExposure_Counts(t *testing.T) {
	proceedings := []entity.LegalProceeding{
		{AmountInDollars: 10_000_000, IsITRelated: true, Category: entity.LegalCategoryRegulatory},
		{AmountInDollars: 5_000_000, Category: entity.LegalCategoryRegulatory},
		{Category: entity.LegalCategoryCommercial},
	}

	summary := AggregateLegalExposure(proceedings, 0)
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.TotalCases)
	assert.Equal(t, 15_000_000.0, summary.TotalExposure)
	assert.Equal(t, 1, summary.ITRelatedCases)
	assert.Equal(t, 2, summary.RegulatoryCases)
}

func TestAggregateLegalExposure_Idempotent(t *testing.T) {
	proceedings := []entity.LegalProceeding{
		{AmountInDollars: 25_000_000, IsITRelated: true, Category: entity.LegalCategoryRegulatory},
		{AmountInDollars: 5_000_000, Category: entity.LegalCategoryClassAction},
	}

	first := AggregateLegalExposure(proceedings, 500_000_000)
	second := AggregateLegalExposure(proceedings, 500_000_000)
	assert.Equal(t, first, second)
	assert.Equal(t, 30_000_000.0, second.TotalExposure, "exposure recomputed from the proceeding set, never accumulated")
}
