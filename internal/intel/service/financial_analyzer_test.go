package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/internal/intel/dto"
	"sales-intel-scryper/pkg/logger"
)

func newTestFinancialAnalyzer(now time.Time) *FinancialAnalyzer {
	a := NewFinancialAnalyzer(logger.NewNop())
	a.now = func() time.Time { return now }
	return a
}

func factsWith(concepts map[string][]dto.FactValue) *dto.CompanyFactsResponse {
	gaap := make(map[string]dto.FactUnits, len(concepts))
	for concept, values := range concepts {
		gaap[concept] = dto.FactUnits{Units: map[string][]dto.FactValue{"USD": values}}
	}
	return &dto.CompanyFactsResponse{Facts: map[string]map[string]dto.FactUnits{"us-gaap": gaap}}
}

func TestAnalyze_PicksLatestFactValue(t *testing.T) {
	facts := factsWith(map[string][]dto.FactValue{
		"Revenues": {
			{End: "2024-12-31", Value: 9_000_000_000, Filed: "2025-02-20"},
			{End: "2025-12-31", Value: 10_500_000_000, Filed: "2026-02-18"},
		},
		"Assets": {
			{End: "2025-12-31", Value: 42_000_000_000, Filed: "2026-02-18"},
		},
	})

	metrics := newTestFinancialAnalyzer(time.Now()).Analyze(facts, "", "")
	require.NotNil(t, metrics)

	assert.Equal(t, "$10.5B", metrics.Revenue)
	assert.Equal(t, 10_500_000_000.0, metrics.RevenueInDollars)
	assert.Equal(t, "$42.0B", metrics.TotalAssets)
	assert.Equal(t, "2025-12-31", metrics.ReportPeriod)
	assert.Equal(t, "2026-02-18", metrics.FilingDate)
}

func TestAnalyze_RevenueConceptFallback(t *testing.T) {
	facts := factsWith(map[string][]dto.FactValue{
		"RevenueFromContractWithCustomerExcludingAssessedTax": {
			{End: "2025-12-31", Value: 3_200_000_000, Filed: "2026-02-01"},
		},
	})

	metrics := newTestFinancialAnalyzer(time.Now()).Analyze(facts, "", "")
	require.NotNil(t, metrics)
	assert.Equal(t, 3_200_000_000.0, metrics.RevenueInDollars)
}

func TestAnalyze_NothingDerivable(t *testing.T) {
	assert.Nil(t, newTestFinancialAnalyzer(time.Now()).Analyze(nil, "", ""))
	assert.Nil(t, newTestFinancialAnalyzer(time.Now()).Analyze(nil, "not a date", ""))
}

func TestAnalyze_FiscalYearInfo(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	metrics := newTestFinancialAnalyzer(now).Analyze(nil, "December 31", "")
	require.NotNil(t, metrics)
	require.NotNil(t, metrics.FiscalYear)

	fy := metrics.FiscalYear
	assert.Equal(t, "December 31", fy.FiscalYearEnd)
	assert.Equal(t, 123, fy.DaysRemaining)
	assert.Equal(t, 3, fy.FiscalQuarter)
	assert.Equal(t, entity.BudgetPhaseExecution, fy.BudgetCyclePhase)
}

func TestBudgetCyclePhase(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{days: 300, want: entity.BudgetPhaseNewYearSetup},
		{days: 271, want: entity.BudgetPhaseNewYearSetup},
		{days: 270, want: entity.BudgetPhaseExecution},
		{days: 91, want: entity.BudgetPhaseExecution},
		{days: 90, want: entity.BudgetPhasePlanning},
		{days: 46, want: entity.BudgetPhasePlanning},
		{days: 45, want: entity.BudgetPhaseFlush},
		{days: 0, want: entity.BudgetPhaseFlush},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BudgetCyclePhase(tt.days), "days=%d", tt.days)
	}
}

func TestAnalyze_CapExTrendsWithYoYChange(t *testing.T) {
	mdna := "Capital expenditures were $120 million in fiscal 2025, driven by data center buildout. " +
		"Capital expenditures were $100 million in fiscal 2024. " +
		"Selling expenses were flat year over year."

	metrics := newTestFinancialAnalyzer(time.Now()).Analyze(nil, "", mdna)
	require.NotNil(t, metrics)
	require.Len(t, metrics.CapExTrends, 2)

	assert.Equal(t, 120_000_000.0, metrics.CapExTrends[0].AmountInDollars)
	assert.Equal(t, "$120M", metrics.CapExTrends[0].Amount)
	assert.Equal(t, 100_000_000.0, metrics.CapExTrends[1].AmountInDollars)

	require.NotNil(t, metrics.CapExYoYChange)
	assert.InDelta(t, 20.0, *metrics.CapExYoYChange, 0.001)
}

func TestAnalyze_CapExMentionWithoutAmountIgnored(t *testing.T) {
	mdna := "We expect capital expenditures to remain consistent with historical levels going forward."

	assert.Nil(t, newTestFinancialAnalyzer(time.Now()).Analyze(nil, "", mdna))
}
