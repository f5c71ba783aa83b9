package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/internal/intel/dto"
	"sales-intel-scryper/internal/intel/repository"
	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/telegram"
	"sales-intel-scryper/pkg/utils"
)

const (
	eventFilingWindow = 365 * 24 * time.Hour
	maxEventFilings   = 10
	filingDateLayout  = "2006-01-02"
)

var (
	annualForms    = []string{"10-K", "10-K/A", "20-F"}
	quarterlyForms = []string{"10-Q", "10-Q/A"}
	eventForms     = []string{"8-K", "8-K/A"}
)

// IntelService is the public pipeline entry point.
type IntelService interface {
	// GetIntelligence composes SEC intelligence for a company name or ticker.
	// Returns repository.ErrCompanyNotFound when the query does not resolve
	// to a regulated filer.
	GetIntelligence(ctx context.Context, companyOrTicker string, forceRefresh bool) (*entity.SECData, error)
	// InvalidateCache deletes the whole cache entry for a company.
	InvalidateCache(ctx context.Context, companyOrTicker string) error
}

// NewIntelService creates the pipeline service. notifier may be nil to
// disable HOT-signal alerts.
func NewIntelService(
	edgarRepo repository.EdgarRepository,
	cacheRepo repository.CacheRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) IntelService {
	return &intelService{
		edgarRepo:         edgarRepo,
		cacheRepo:         cacheRepo,
		notifier:          notifier,
		logger:            log,
		extractor:         NewSectionExtractor(log),
		legalParser:       NewLegalParser(log),
		riskProcessor:     NewRiskProcessor(log),
		executiveParser:   NewExecutiveParser(log),
		strategicParser:   NewStrategicParser(log),
		financialAnalyzer: NewFinancialAnalyzer(log),
		now:               time.Now,
	}
}

type intelService struct {
	edgarRepo         repository.EdgarRepository
	cacheRepo         repository.CacheRepository
	notifier          telegram.Notifier
	logger            *logger.Logger
	extractor         *SectionExtractor
	legalParser       *LegalParser
	riskProcessor     *RiskProcessor
	executiveParser   *ExecutiveParser
	strategicParser   *StrategicParser
	financialAnalyzer *FinancialAnalyzer
	now               func() time.Time
}

func (s *intelService) GetIntelligence(ctx context.Context, companyOrTicker string, forceRefresh bool) (*entity.SECData, error) {
	identity, err := s.edgarRepo.ResolveCompany(ctx, companyOrTicker)
	if err != nil {
		return nil, err
	}

	if !forceRefresh {
		cached, err := s.cacheRepo.Get(ctx, identity.CIK)
		if err != nil {
			// A broken cache store degrades to a full pipeline run.
			s.logger.Warn("Cache lookup failed", logger.StringField("cik", identity.CIK), logger.ErrorField(err))
		}
		if cached != nil {
			s.refreshTenures(cached)
			s.logger.Info("Serving SEC intelligence from cache",
				logger.StringField("cik", identity.CIK),
				logger.StringField("company", identity.Name),
			)
			return cached, nil
		}
	}

	data, dominantType, err := s.runPipeline(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Set(ctx, identity.CIK, data, dominantType); err != nil {
		s.logger.Error("Failed to write cache entry", logger.StringField("cik", identity.CIK), logger.ErrorField(err))
	}

	s.notifyHotChanges(data)
	return data, nil
}

func (s *intelService) InvalidateCache(ctx context.Context, companyOrTicker string) error {
	identity, err := s.edgarRepo.ResolveCompany(ctx, companyOrTicker)
	if err != nil {
		return err
	}
	return s.cacheRepo.Delete(ctx, identity.CIK)
}

// runPipeline executes resolve-to-compose for one identity. Only the
// submissions fetch is fatal; every other failure narrows to its own
// section, metric or filing.
func (s *intelService) runPipeline(ctx context.Context, identity *entity.CompanyIdentity) (*entity.SECData, string, error) {
	submissions, err := s.edgarRepo.GetSubmissions(ctx, identity.CIK)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch submission history: %w", err)
	}

	annual, quarterly, events := s.locateFilings(submissions)
	s.logger.Info("Located filings",
		logger.StringField("cik", identity.CIK),
		logger.Field("has_annual", annual != nil),
		logger.Field("has_quarterly", quarterly != nil),
		logger.IntField("event_filings", len(events)),
	)

	annualSections, quarterlySections := s.extractSections(ctx, identity.CIK, annual, quarterly)

	data := &entity.SECData{
		Company:             *identity,
		LatestAnnual:        annual,
		LatestQuarterly:     quarterly,
		RecentEventFilings:  events,
		LegalProceedings:    []entity.LegalProceeding{},
		RiskFactors:         []string{},
		ProcessedRisks:      []entity.ProcessedRisk{},
		ExecutiveChanges:    []entity.ExecutiveChange{},
		StrategicPriorities: []entity.StrategicPriority{},
		PainSignals:         []string{},
	}

	// MD&A from the quarterly filing is more current than the annual's when
	// both were extracted.
	mdnaText, mdnaForm, mdnaDate := "", "", time.Time{}
	if annualSections != nil && annualSections.ManagementDiscussion.Found && annual != nil {
		mdnaText, mdnaForm, mdnaDate = annualSections.ManagementDiscussion.Text, annual.FormType, annual.FilingDate
	}
	if quarterlySections != nil && quarterlySections.ManagementDiscussion.Found && quarterly != nil {
		mdnaText, mdnaForm, mdnaDate = quarterlySections.ManagementDiscussion.Text, quarterly.FormType, quarterly.FilingDate
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	run := func(fn func()) {
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			fn()
		})
	}

	run(func() {
		var proceedings []entity.LegalProceeding
		if annualSections != nil && annualSections.LegalProceedings.Found && annual != nil {
			proceedings = append(proceedings, s.legalParser.Parse(annualSections.LegalProceedings.Text, annual.FilingDate)...)
		}
		if quarterlySections != nil && quarterlySections.LegalProceedings.Found && quarterly != nil {
			proceedings = append(proceedings, s.legalParser.Parse(quarterlySections.LegalProceedings.Text, quarterly.FilingDate)...)
		}
		mu.Lock()
		data.LegalProceedings = proceedings
		mu.Unlock()
	})

	run(func() {
		if annualSections == nil || !annualSections.RiskFactors.Found || annual == nil {
			return
		}
		raw := s.riskProcessor.ExtractRiskFactors(annualSections.RiskFactors.Text)
		processed := s.riskProcessor.ProcessRisks(annualSections.RiskFactors.Text, annual.FilingDate)
		mu.Lock()
		data.RiskFactors = raw
		data.ProcessedRisks = processed
		mu.Unlock()
	})

	run(func() {
		changes := s.parseExecutiveChanges(ctx, identity.CIK, events)
		mu.Lock()
		data.ExecutiveChanges = changes
		mu.Unlock()
	})

	run(func() {
		if mdnaText == "" {
			return
		}
		priorities := s.strategicParser.Parse(mdnaText, mdnaForm, mdnaDate)
		mu.Lock()
		data.StrategicPriorities = priorities
		mu.Unlock()
	})

	run(func() {
		facts, err := s.edgarRepo.GetCompanyFacts(ctx, identity.CIK)
		if err != nil {
			// Financial metrics degrade by omission.
			s.logger.Warn("Company facts unavailable", logger.StringField("cik", identity.CIK), logger.ErrorField(err))
		}
		fiscalYearEnd := ""
		if annualSections != nil {
			fiscalYearEnd = annualSections.FiscalYearEnd
		}
		metrics := s.financialAnalyzer.Analyze(facts, fiscalYearEnd, mdnaText)
		mu.Lock()
		data.Financials = metrics
		mu.Unlock()
	})

	wg.Wait()

	revenue := 0.0
	if data.Financials != nil {
		revenue = data.Financials.RevenueInDollars
	}
	data.LegalExposure = AggregateLegalExposure(data.LegalProceedings, revenue)
	data.PainSignals = derivePainSignals(data)

	return data, dominantFilingType(annual, quarterly, events), nil
}

// extractSections fetches and extracts the annual filing's sections, only
// falling back to the quarterly filing when annual extraction yields nothing.
// Sequential-with-fallback keeps fetch volume down.
func (s *intelService) extractSections(ctx context.Context, cik string, annual, quarterly *entity.Filing) (*FilingSections, *FilingSections) {
	var annualSections *FilingSections
	if annual != nil {
		doc, err := s.edgarRepo.GetFilingDocument(ctx, cik, annual.AccessionNumber)
		if err != nil {
			s.logger.Warn("Annual filing document unavailable",
				logger.StringField("accession", annual.AccessionNumber), logger.ErrorField(err))
		} else {
			annualSections = s.extractor.Extract(doc, annual.FormType)
		}
	}

	if annualSections != nil && annualSections.HasAny() {
		return annualSections, nil
	}

	var quarterlySections *FilingSections
	if quarterly != nil {
		doc, err := s.edgarRepo.GetFilingDocument(ctx, cik, quarterly.AccessionNumber)
		if err != nil {
			s.logger.Warn("Quarterly filing document unavailable",
				logger.StringField("accession", quarterly.AccessionNumber), logger.ErrorField(err))
		} else {
			quarterlySections = s.extractor.Extract(doc, quarterly.FormType)
		}
	}
	return annualSections, quarterlySections
}

// locateFilings selects the filing slots from the submission history. The
// recent list is pre-sorted descending by filing date, so the first hit per
// slot is the latest. Missing slots are not errors.
func (s *intelService) locateFilings(submissions *dto.SubmissionsResponse) (*entity.Filing, *entity.Filing, []entity.Filing) {
	recent := submissions.Filings.Recent

	var annual, quarterly *entity.Filing
	var events []entity.Filing
	cutoff := s.now().Add(-eventFilingWindow)

	for i := range recent.Form {
		filing := filingAt(recent, i)
		switch {
		case annual == nil && utils.ContainsString(annualForms, filing.FormType):
			annual = filing
		case quarterly == nil && utils.ContainsString(quarterlyForms, filing.FormType):
			quarterly = filing
		case utils.ContainsString(eventForms, filing.FormType):
			if len(events) < maxEventFilings && filing.FilingDate.After(cutoff) {
				events = append(events, *filing)
			}
		}
	}
	return annual, quarterly, events
}

// filingAt denormalizes index i of the parallel arrays. Every array except
// Form is bounds-checked: EDGAR responses occasionally ship ragged arrays and
// a short one must not panic the request.
func filingAt(recent dto.RecentFilings, i int) *entity.Filing {
	filing := &entity.Filing{
		FormType: recent.Form[i],
	}
	if i < len(recent.AccessionNumber) {
		filing.AccessionNumber = recent.AccessionNumber[i]
	}
	if i < len(recent.FilingDate) {
		if d, err := time.Parse(filingDateLayout, recent.FilingDate[i]); err == nil {
			filing.FilingDate = d
		}
	}
	if i < len(recent.ReportDate) && recent.ReportDate[i] != "" {
		if d, err := time.Parse(filingDateLayout, recent.ReportDate[i]); err == nil {
			filing.ReportDate = &d
		}
	}
	if i < len(recent.PrimaryDocument) {
		filing.PrimaryDocument = recent.PrimaryDocument[i]
	}
	return filing
}

// parseExecutiveChanges fetches each recent event filing and mines it for
// executive changes. A failed fetch skips that filing only.
func (s *intelService) parseExecutiveChanges(ctx context.Context, cik string, events []entity.Filing) []entity.ExecutiveChange {
	var changes []entity.ExecutiveChange
	for _, event := range events {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		doc, err := s.edgarRepo.GetFilingDocument(ctx, cik, event.AccessionNumber)
		if err != nil {
			s.logger.Warn("Event filing document unavailable",
				logger.StringField("accession", event.AccessionNumber), logger.ErrorField(err))
			continue
		}
		sections := s.extractor.Extract(doc, event.FormType)
		if !sections.ExecutiveChanges.Found {
			continue
		}
		changes = append(changes, s.executiveParser.Parse(sections.ExecutiveChanges.Text, event.FilingDate)...)
	}
	return SortAndCapChanges(changes)
}

// refreshTenures recomputes days-in-role and the tenure-sensitive sales
// implication for cached entries, which would otherwise go stale silently.
func (s *intelService) refreshTenures(data *entity.SECData) {
	now := s.now()
	for i := range data.ExecutiveChanges {
		change := &data.ExecutiveChanges[i]
		change.DaysInRole = DaysInRole(change.EffectiveDate, now)
		title := change.NewTitle
		if title == "" {
			title = change.PreviousTitle
		}
		change.Priority, change.SalesImplication = ClassifyExecutivePriority(title, change.DaysInRole)
	}
}

func (s *intelService) notifyHotChanges(data *entity.SECData) {
	if s.notifier == nil {
		return
	}
	for _, change := range data.ExecutiveChanges {
		if change.Priority != entity.PriorityHot {
			continue
		}
		change := change
		utils.GoSafe(func() {
			msg := fmt.Sprintf("*%s*: %s %s (%s, %d days in role)",
				data.Company.Name, change.Name, change.ChangeType, change.NewTitle, change.DaysInRole)
			if err := s.notifier.SendMessage(msg); err != nil {
				s.logger.Warn("Failed to send HOT change alert", logger.ErrorField(err))
			}
		})
	}
}

// derivePainSignals builds the short human-readable bullets surfaced on top
// of the structured data.
func derivePainSignals(data *entity.SECData) []string {
	signals := []string{}

	if data.LegalExposure != nil {
		if data.LegalExposure.RiskLevel == entity.RiskLevelHigh || data.LegalExposure.RiskLevel == entity.RiskLevelCritical {
			signals = append(signals, fmt.Sprintf("Legal exposure is %s across %d disclosed proceedings",
				strings.ToLower(data.LegalExposure.RiskLevel), data.LegalExposure.TotalCases))
		}
		if data.LegalExposure.ITRelatedCases > 0 {
			signals = append(signals, fmt.Sprintf("%d technology-related legal matters disclosed", data.LegalExposure.ITRelatedCases))
		}
	}

	if len(data.ProcessedRisks) > 0 {
		signals = append(signals, fmt.Sprintf("Top disclosed risk area: %s", data.ProcessedRisks[0].Category))
	}

	for _, change := range data.ExecutiveChanges {
		if change.Priority == entity.PriorityHot {
			signals = append(signals, fmt.Sprintf("Recent technology leadership change: %s (%d days in role)", change.Name, change.DaysInRole))
			break
		}
	}

	if len(data.StrategicPriorities) > 0 {
		signals = append(signals, fmt.Sprintf("%d stated technology investment priorities, led by %s",
			len(data.StrategicPriorities), data.StrategicPriorities[0].Category))
	}

	if data.Financials != nil && data.Financials.FiscalYear != nil {
		signals = append(signals, fmt.Sprintf("Budget cycle phase: %s (%d days to fiscal year end)",
			data.Financials.FiscalYear.BudgetCyclePhase, data.Financials.FiscalYear.DaysRemaining))
	}

	return signals
}

// dominantFilingType picks the expiry class for the cache write.
func dominantFilingType(annual, quarterly *entity.Filing, events []entity.Filing) string {
	switch {
	case annual != nil:
		return entity.FilingTypeAnnual
	case quarterly != nil:
		return entity.FilingTypeQuarterly
	case len(events) > 0:
		return entity.FilingTypeEvent
	default:
		return entity.FilingTypeNone
	}
}
