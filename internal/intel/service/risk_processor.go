package service

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/utils"
)

const (
	maxRawRisksCollected = 8
	maxRawRisksReturned  = 5
	maxProcessedRisks    = 5
	minRiskChunkLen      = 100
	maxRawRiskChunkLen   = 1000
	maxRiskExcerptLen    = 500
)

var (
	paragraphBoundaryPattern = regexp.MustCompile(`\n\s*\n`)

	generalRiskKeywords = []string{
		"could adversely affect", "material adverse", "may not be able",
		"could harm", "significant risk", "subject to risks", "uncertainty",
		"could result in", "may be unable", "no assurance",
	}
	technologyRiskKeywords = []string{
		"cyber", "information technology", "data breach", "security incident",
		"system failure", "legacy system", "software", "infrastructure",
		"network", "outage", "unauthorized access",
	}
)

// riskCategoryDef defines one categorization group. Categories are tested in
// slice order and the first match wins, so ordering is part of the contract.
type riskCategoryDef struct {
	category   string
	keywords   []string
	salesAngle string
}

var riskCategoryDefs = []riskCategoryDef{
	{
		category:   entity.RiskCategoryLegacyTech,
		keywords:   []string{"legacy system", "outdated", "aging infrastructure", "technical debt", "end of life", "obsolete", "mainframe"},
		salesAngle: "Modernization services to retire aging platforms before they become outage and audit liabilities.",
	},
	{
		category:   entity.RiskCategorySecurity,
		keywords:   []string{"cybersecurity", "cyber attack", "data breach", "ransomware", "unauthorized access", "security incident", "phishing", "malware"},
		salesAngle: "Enhanced cybersecurity solutions addressing the breach and incident exposure they disclose.",
	},
	{
		category:   entity.RiskCategoryCloud,
		keywords:   []string{"cloud", "saas", "hosting provider", "third-party data center", "aws", "azure"},
		salesAngle: "Cloud migration and optimization services aligned with their stated platform dependencies.",
	},
	{
		category:   entity.RiskCategoryIntegration,
		keywords:   []string{"integration", "acquisition", "merger", "consolidat", "interoperab", "disparate systems"},
		salesAngle: "Systems integration expertise for post-acquisition consolidation work.",
	},
	{
		category:   entity.RiskCategoryCompliance,
		keywords:   []string{"compliance", "regulatory requirement", "gdpr", "hipaa", "sarbanes", "data protection law", "privacy regulation"},
		salesAngle: "Compliance automation reducing the regulatory exposure they flag.",
	},
	{
		category:   entity.RiskCategoryResilience,
		keywords:   []string{"business continuity", "disaster recovery", "natural disaster", "supply chain disruption", "pandemic", "resilience", "single point of failure"},
		salesAngle: "Resilience and continuity solutions for the disruption scenarios they call out.",
	},
}

// RiskProcessor runs both risk factor passes: raw top-statement extraction
// and categorized scoring.
type RiskProcessor struct {
	logger *logger.Logger
}

// NewRiskProcessor creates a new RiskProcessor.
func NewRiskProcessor(log *logger.Logger) *RiskProcessor {
	return &RiskProcessor{logger: log}
}

// ExtractRiskFactors is the raw pass: short risk statements from the risk
// factors section, technology-flagged ones first.
func (p *RiskProcessor) ExtractRiskFactors(sectionText string) []string {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var technology, general []string
	for _, chunk := range splitParagraphs(sectionText) {
		if len(technology)+len(general) >= maxRawRisksCollected {
			break
		}
		if len(chunk) < minRiskChunkLen || len(chunk) > maxRawRiskChunkLen {
			continue
		}
		lower := strings.ToLower(chunk)
		isTech := containsAny(lower, technologyRiskKeywords)
		if !isTech && !containsAny(lower, generalRiskKeywords) {
			continue
		}

		statement := leadingSentences(chunk)
		if isTech {
			technology = append(technology, statement)
		} else {
			general = append(general, statement)
		}
	}

	collected := append(technology, general...)
	if len(collected) > maxRawRisksReturned {
		collected = collected[:maxRawRisksReturned]
	}
	return collected
}

// ProcessRisks is the categorized pass: each qualifying paragraph is assigned
// to the first category whose keyword set it matches, scored by keyword
// density, and the top results are paired with a canned sales angle.
func (p *RiskProcessor) ProcessRisks(sectionText string, sourceDate time.Time) []entity.ProcessedRisk {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var risks []entity.ProcessedRisk
	for _, paragraph := range splitParagraphs(sectionText) {
		if len(paragraph) < minRiskChunkLen {
			continue
		}
		lower := strings.ToLower(paragraph)

		for _, def := range riskCategoryDefs {
			matched := matchedKeywords(lower, def.keywords)
			if len(matched) == 0 {
				continue
			}

			score := 10*len(matched) + lengthBonus(paragraph)
			risks = append(risks, entity.ProcessedRisk{
				Category:        def.category,
				Excerpt:         buildExcerpt(paragraph, matched[0]),
				MatchedKeywords: matched,
				SalesAngle:      def.salesAngle,
				RelevanceScore:  score,
				SourceDate:      sourceDate,
			})
			// First matching category wins; a Security+Cloud paragraph is
			// Security, never both.
			break
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].RelevanceScore > risks[j].RelevanceScore
	})
	if len(risks) > maxProcessedRisks {
		risks = risks[:maxProcessedRisks]
	}
	return risks
}

func matchedKeywords(lower string, keywords []string) []string {
	var matched []string
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			matched = append(matched, k)
		}
	}
	return matched
}

func lengthBonus(paragraph string) int {
	bonus := len(paragraph) / 200
	if bonus > 5 {
		bonus = 5
	}
	return bonus
}

// buildExcerpt returns the sentence containing the matched keyword plus the
// next one or two sentences, capped.
func buildExcerpt(paragraph, keyword string) string {
	sentences := splitSentenceChunks(paragraph)
	start := 0
	for i, s := range sentences {
		if strings.Contains(strings.ToLower(s), keyword) {
			start = i
			break
		}
	}
	end := start + 3
	if end > len(sentences) {
		end = len(sentences)
	}
	excerpt := strings.Join(sentences[start:end], ". ")
	if len(excerpt) > maxRiskExcerptLen {
		excerpt = excerpt[:maxRiskExcerptLen]
	}
	return utils.CollapseWhitespace(excerpt)
}

// leadingSentences formats a chunk as a short statement: its first sentence,
// or first two when the opener is too short to stand alone.
func leadingSentences(chunk string) string {
	sentences := splitSentenceChunks(chunk)
	if len(sentences) == 0 {
		return utils.CollapseWhitespace(chunk)
	}
	statement := sentences[0]
	if len(statement) < 40 && len(sentences) > 1 {
		statement = statement + ". " + sentences[1]
	}
	if !strings.HasSuffix(statement, ".") {
		statement += "."
	}
	return utils.CollapseWhitespace(statement)
}

func splitParagraphs(text string) []string {
	parts := paragraphBoundaryPattern.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}
