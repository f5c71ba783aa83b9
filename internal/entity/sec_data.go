package entity

import "time"

// CompanyIdentity is the resolved canonical identity of a public filer.
type CompanyIdentity struct {
	CIK    string `json:"cik"`
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// Filing identifies a single SEC filing.
type Filing struct {
	FormType        string     `json:"form_type"`
	FilingDate      time.Time  `json:"filing_date"`
	AccessionNumber string     `json:"accession_number"`
	ReportDate      *time.Time `json:"report_date,omitempty"`
	PrimaryDocument string     `json:"primary_document,omitempty"`
}

// Legal proceeding types.
const (
	ProceedingTypeLitigation    = "litigation"
	ProceedingTypeSettlement    = "settlement"
	ProceedingTypeFine          = "fine"
	ProceedingTypeInvestigation = "investigation"
)

// Legal proceeding categories.
const (
	LegalCategoryRegulatory  = "Regulatory"
	LegalCategoryClassAction = "Class Action"
	LegalCategoryCommercial  = "Commercial"
	LegalCategoryEmployment  = "Employment"
	LegalCategoryOther       = "Other"
)

// LegalProceeding is one litigation/settlement/fine/investigation record mined
// from a filing's legal proceedings section. Derived purely from text pattern
// matches, so duplicates and false positives are tolerated.
type LegalProceeding struct {
	Description     string     `json:"description"`
	Amount          string     `json:"amount,omitempty"`
	AmountInDollars float64    `json:"amount_in_dollars,omitempty"`
	Type            string     `json:"type"`
	Category        string     `json:"category"`
	IsITRelated     bool       `json:"is_it_related"`
	FiledDate       *time.Time `json:"filed_date,omitempty"`
}

// Legal exposure risk levels.
const (
	RiskLevelLow      = "LOW"
	RiskLevelMedium   = "MEDIUM"
	RiskLevelHigh     = "HIGH"
	RiskLevelCritical = "CRITICAL"
)

// LegalExposureSummary aggregates all legal proceedings for one company.
// TotalExposure is always recomputed from the proceeding set, never stored
// independently.
type LegalExposureSummary struct {
	TotalCases      int     `json:"total_cases"`
	TotalExposure   float64 `json:"total_exposure"`
	ITRelatedCases  int     `json:"it_related_cases"`
	RegulatoryCases int     `json:"regulatory_cases"`
	RiskLevel       string  `json:"risk_level"`
	IsMaterial      bool    `json:"is_material"`
	// RevenueBased marks whether RiskLevel came from exposure-as-%-of-revenue
	// or from the coarser absolute-dollar fallback.
	RevenueBased bool `json:"revenue_based"`
}

// Risk factor categories, in classification priority order.
const (
	RiskCategoryLegacyTech  = "Legacy Tech"
	RiskCategorySecurity    = "Security"
	RiskCategoryCloud       = "Cloud"
	RiskCategoryIntegration = "Integration"
	RiskCategoryCompliance  = "Compliance"
	RiskCategoryResilience  = "Resilience"
)

// ProcessedRisk is a scored, categorized excerpt from risk factor text.
type ProcessedRisk struct {
	Category        string    `json:"category"`
	Excerpt         string    `json:"excerpt"`
	MatchedKeywords []string  `json:"matched_keywords"`
	SalesAngle      string    `json:"sales_angle"`
	RelevanceScore  int       `json:"relevance_score"`
	SourceDate      time.Time `json:"source_date"`
}

// Executive change types.
const (
	ChangeTypeAppointment = "appointment"
	ChangeTypeDeparture   = "departure"
	ChangeTypeTransition  = "transition"
)

// Executive change priorities.
const (
	PriorityHot     = "HOT"
	PriorityWarm    = "WARM"
	PriorityMonitor = "MONITOR"
)

// ExecutiveChange is an appointment or departure event mined from an 8-K.
type ExecutiveChange struct {
	Name             string    `json:"name"`
	PreviousTitle    string    `json:"previous_title,omitempty"`
	NewTitle         string    `json:"new_title,omitempty"`
	ChangeType       string    `json:"change_type"`
	EffectiveDate    time.Time `json:"effective_date"`
	FilingDate       time.Time `json:"filing_date"`
	Reason           string    `json:"reason,omitempty"`
	Priority         string    `json:"priority"`
	DaysInRole       int       `json:"days_in_role"`
	SalesImplication string    `json:"sales_implication"`
}

// Strategic priority categories.
const (
	StrategicCategoryCloud          = "Cloud"
	StrategicCategoryModernization  = "Legacy Modernization"
	StrategicCategoryCybersecurity  = "Cybersecurity"
	StrategicCategoryAIAutomation   = "AI/Automation"
	StrategicCategoryTransformation = "Digital Transformation"
	StrategicCategoryInfrastructure = "Infrastructure"
)

// Service alignment labels.
const (
	AlignmentDirectMatch = "DIRECT MATCH"
	AlignmentAdjacent    = "ADJACENT OPPORTUNITY"
	AlignmentMonitor     = "MONITOR"
)

// StrategicPriority is a forward-looking technology investment statement mined
// from management discussion text.
type StrategicPriority struct {
	Statement        string    `json:"statement"`
	Category         string    `json:"category"`
	Budget           string    `json:"budget,omitempty"`
	SourceForm       string    `json:"source_form"`
	SourceDate       time.Time `json:"source_date"`
	ServiceAlignment string    `json:"service_alignment"`
	ServiceCategory  string    `json:"service_category"`
}

// Budget cycle phases derived from days remaining in the fiscal year.
const (
	BudgetPhasePlanning     = "PLANNING"
	BudgetPhaseExecution    = "EXECUTION"
	BudgetPhaseFlush        = "BUDGET FLUSH"
	BudgetPhaseNewYearSetup = "NEW YEAR SETUP"
)

// FiscalYearInfo is derived from the fiscal year end date found in filing text.
type FiscalYearInfo struct {
	FiscalYearEnd    string `json:"fiscal_year_end"`
	DaysRemaining    int    `json:"days_remaining"`
	FiscalQuarter    int    `json:"fiscal_quarter"`
	BudgetCyclePhase string `json:"budget_cycle_phase"`
}

// CapExTrend is one capital expenditure / technology investment mention.
type CapExTrend struct {
	Amount          string  `json:"amount"`
	AmountInDollars float64 `json:"amount_in_dollars"`
	Mention         string  `json:"mention"`
}

// FinancialMetrics holds formatted balance sheet and income metrics from the
// XBRL company facts endpoint.
type FinancialMetrics struct {
	TotalAssets      string          `json:"total_assets,omitempty"`
	TotalLiabilities string          `json:"total_liabilities,omitempty"`
	Cash             string          `json:"cash,omitempty"`
	TotalDebt        string          `json:"total_debt,omitempty"`
	Revenue          string          `json:"revenue,omitempty"`
	NetIncome        string          `json:"net_income,omitempty"`
	RevenueInDollars float64         `json:"revenue_in_dollars,omitempty"`
	ReportPeriod     string          `json:"report_period,omitempty"`
	FilingDate       string          `json:"filing_date,omitempty"`
	FiscalYear       *FiscalYearInfo `json:"fiscal_year,omitempty"`
	CapExTrends      []CapExTrend    `json:"capex_trends,omitempty"`
	CapExYoYChange   *float64        `json:"capex_yoy_change,omitempty"`
}

// SECData is the composed intelligence aggregate for one company. This is the
// unit cached and returned to callers.
type SECData struct {
	Company             CompanyIdentity       `json:"company"`
	LatestAnnual        *Filing               `json:"latest_annual,omitempty"`
	LatestQuarterly     *Filing               `json:"latest_quarterly,omitempty"`
	RecentEventFilings  []Filing              `json:"recent_event_filings,omitempty"`
	LegalProceedings    []LegalProceeding     `json:"legal_proceedings"`
	LegalExposure       *LegalExposureSummary `json:"legal_exposure,omitempty"`
	RiskFactors         []string              `json:"risk_factors"`
	ProcessedRisks      []ProcessedRisk       `json:"processed_risks"`
	ExecutiveChanges    []ExecutiveChange     `json:"executive_changes"`
	StrategicPriorities []StrategicPriority   `json:"strategic_priorities"`
	PainSignals         []string              `json:"pain_signals"`
	Financials          *FinancialMetrics     `json:"financials,omitempty"`

	// Cache metadata, populated when served from the cache store.
	CachedAt  *time.Time `json:"cached_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsCached  bool       `json:"is_cached"`
}
