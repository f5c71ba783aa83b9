package service

import (
	"regexp"
	"strings"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/internal/intel/dto"
	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/utils"
)

const maxCapExTrends = 3

// Alternate XBRL concept names tried in priority order per metric. Filers
// tag the same economic fact under different us-gaap concepts.
var (
	assetConcepts     = []string{"Assets"}
	liabilityConcepts = []string{"Liabilities"}
	cashConcepts      = []string{"CashAndCashEquivalentsAtCarryingValue", "CashCashEquivalentsRestrictedCashAndRestrictedCashEquivalents"}
	debtConcepts      = []string{"LongTermDebt", "LongTermDebtNoncurrent", "DebtInstrumentCarryingAmount"}
	revenueConcepts   = []string{"Revenues", "RevenueFromContractWithCustomerExcludingAssessedTax", "SalesRevenueNet"}
	netIncomeConcepts = []string{"NetIncomeLoss", "ProfitLoss"}

	capexMentionPattern = regexp.MustCompile(`(?i)capital\s+expenditures?|capex|technology\s+investments?|invest(?:ed|ing)?\s+in\s+technology|it\s+spending|infrastructure\s+investments?`)
)

// FinancialAnalyzer builds structured financial metrics from XBRL company
// facts plus fiscal-year and capital-expenditure signals from filing text.
type FinancialAnalyzer struct {
	logger *logger.Logger
	now    func() time.Time
}

// NewFinancialAnalyzer creates a new FinancialAnalyzer.
func NewFinancialAnalyzer(log *logger.Logger) *FinancialAnalyzer {
	return &FinancialAnalyzer{logger: log, now: time.Now}
}

// Analyze composes financial metrics. facts may be nil (endpoint
// unavailable); fiscalYearEnd and mdnaText may be empty. A nil return means
// nothing at all could be derived.
func (a *FinancialAnalyzer) Analyze(facts *dto.CompanyFactsResponse, fiscalYearEnd, mdnaText string) *entity.FinancialMetrics {
	metrics := &entity.FinancialMetrics{}
	populated := false

	if facts != nil {
		gaap := facts.Facts["us-gaap"]
		assign := func(target *string, concepts []string) {
			if value, ok := latestUSDFact(gaap, concepts); ok {
				*target = utils.FormatCurrency(value.Value)
				populated = true
				if metrics.ReportPeriod == "" || value.End > metrics.ReportPeriod {
					metrics.ReportPeriod = value.End
					metrics.FilingDate = value.Filed
				}
			}
		}

		assign(&metrics.TotalAssets, assetConcepts)
		assign(&metrics.TotalLiabilities, liabilityConcepts)
		assign(&metrics.Cash, cashConcepts)
		assign(&metrics.TotalDebt, debtConcepts)
		assign(&metrics.NetIncome, netIncomeConcepts)
		if value, ok := latestUSDFact(gaap, revenueConcepts); ok {
			metrics.Revenue = utils.FormatCurrency(value.Value)
			metrics.RevenueInDollars = value.Value
			populated = true
		}
	}

	if fiscalYearEnd != "" {
		if info := a.deriveFiscalYearInfo(fiscalYearEnd); info != nil {
			metrics.FiscalYear = info
			populated = true
		}
	}

	if mdnaText != "" {
		trends := mineCapExTrends(mdnaText)
		if len(trends) > 0 {
			metrics.CapExTrends = trends
			populated = true
			if len(trends) >= 2 && trends[1].AmountInDollars > 0 {
				change := (trends[0].AmountInDollars - trends[1].AmountInDollars) / trends[1].AmountInDollars * 100
				metrics.CapExYoYChange = &change
			}
		}
	}

	if !populated {
		return nil
	}
	return metrics
}

// latestUSDFact picks the most recent USD value across the candidate
// concepts, trying each concept name in priority order.
func latestUSDFact(gaap map[string]dto.FactUnits, concepts []string) (dto.FactValue, bool) {
	for _, concept := range concepts {
		fact, ok := gaap[concept]
		if !ok {
			continue
		}
		values := fact.Units["USD"]
		if len(values) == 0 {
			continue
		}
		latest := values[0]
		for _, v := range values[1:] {
			if v.End > latest.End {
				latest = v
			}
		}
		return latest, true
	}
	return dto.FactValue{}, false
}

// deriveFiscalYearInfo turns a mined "Month Day" fiscal year end into budget
// cycle intelligence.
func (a *FinancialAnalyzer) deriveFiscalYearInfo(fiscalYearEnd string) *entity.FiscalYearInfo {
	endDate, err := time.Parse("January 2", fiscalYearEnd)
	if err != nil {
		a.logger.Debug("Unparseable fiscal year end", logger.StringField("value", fiscalYearEnd))
		return nil
	}

	now := a.now()
	next := time.Date(now.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(1, 0, 0)
	}
	daysRemaining := int(next.Sub(now).Hours() / 24)

	quarter := 4 - daysRemaining/91
	if quarter < 1 {
		quarter = 1
	}
	if quarter > 4 {
		quarter = 4
	}

	return &entity.FiscalYearInfo{
		FiscalYearEnd:    fiscalYearEnd,
		DaysRemaining:    daysRemaining,
		FiscalQuarter:    quarter,
		BudgetCyclePhase: BudgetCyclePhase(daysRemaining),
	}
}

// BudgetCyclePhase maps days remaining in the fiscal year to a phase.
func BudgetCyclePhase(daysRemaining int) string {
	switch {
	case daysRemaining > 270:
		return entity.BudgetPhaseNewYearSetup
	case daysRemaining > 90:
		return entity.BudgetPhaseExecution
	case daysRemaining > 45:
		return entity.BudgetPhasePlanning
	default:
		return entity.BudgetPhaseFlush
	}
}

// mineCapExTrends finds sentences where a capital expenditure or technology
// investment phrase co-occurs with a dollar amount.
func mineCapExTrends(mdnaText string) []entity.CapExTrend {
	var trends []entity.CapExTrend
	for _, sentence := range splitSentenceChunks(mdnaText) {
		if len(trends) >= maxCapExTrends {
			break
		}
		if !capexMentionPattern.MatchString(sentence) {
			continue
		}
		amount, ok := LargestDollarAmount(sentence)
		if !ok {
			continue
		}
		trends = append(trends, entity.CapExTrend{
			Amount:          amount.Display,
			AmountInDollars: amount.Value,
			Mention:         utils.TruncateString(strings.TrimSpace(sentence), 300),
		})
	}
	return trends
}
