package service

import "sales-intel-scryper/internal/entity"

// Exposure thresholds as a percentage of revenue.
const (
	exposureCriticalPct = 5.0
	exposureHighPct     = 2.0
	exposureMediumPct   = 1.0
)

// Absolute-dollar fallback thresholds when revenue is unknown. Deliberately
// coarser than the revenue-relative thresholds; summaries built this way are
// marked RevenueBased=false.
const (
	exposureHighAbs   = 100_000_000.0
	exposureMediumAbs = 10_000_000.0
)

// AggregateLegalExposure combines all proceedings and (optionally) annual
// revenue into one exposure summary. TotalExposure is recomputed from the
// proceeding set on every call; it is a pure function of its inputs.
func AggregateLegalExposure(proceedings []entity.LegalProceeding, revenue float64) *entity.LegalExposureSummary {
	if len(proceedings) == 0 {
		return nil
	}

	summary := &entity.LegalExposureSummary{
		TotalCases: len(proceedings),
	}
	for _, p := range proceedings {
		summary.TotalExposure += p.AmountInDollars
		if p.IsITRelated {
			summary.ITRelatedCases++
		}
		if p.Category == entity.LegalCategoryRegulatory {
			summary.RegulatoryCases++
		}
	}

	if revenue > 0 {
		pct := summary.TotalExposure / revenue * 100
		summary.RevenueBased = true
		summary.IsMaterial = pct > exposureMediumPct
		switch {
		case pct > exposureCriticalPct:
			summary.RiskLevel = entity.RiskLevelCritical
		case pct > exposureHighPct:
			summary.RiskLevel = entity.RiskLevelHigh
		case pct > exposureMediumPct:
			summary.RiskLevel = entity.RiskLevelMedium
		default:
			summary.RiskLevel = entity.RiskLevelLow
		}
		return summary
	}

	switch {
	case summary.TotalExposure > exposureHighAbs:
		summary.RiskLevel = entity.RiskLevelHigh
	case summary.TotalExposure > exposureMediumAbs:
		summary.RiskLevel = entity.RiskLevelMedium
	default:
		summary.RiskLevel = entity.RiskLevelLow
	}
	return summary
}
