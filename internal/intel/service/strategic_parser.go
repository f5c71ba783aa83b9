package service

import (
	"regexp"
	"strings"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/utils"
)

const (
	maxStrategicPriorities = 5
	minPrioritySentenceLen = 50
	maxPrioritySentenceLen = 500
	priorityDedupePrefix   = 100
)

// strategicCategoryDef describes one category. A sentence qualifies only when
// it matches BOTH the intent pattern and the technology pattern; either alone
// flags merely descriptive mentions. Categories are tested in slice order and
// the first match wins.
type strategicCategoryDef struct {
	category         string
	intentPattern    *regexp.Regexp
	techPattern      *regexp.Regexp
	serviceAlignment string
	serviceCategory  string
}

var strategicIntentFragment = `(?i)invest(?:ing|ments?)?|plan(?:s|ning)?\s+to|initiative|strateg(?:y|ic)|priorit(?:y|ies|ize)|focus(?:ed|ing)?\s+on|committed\s+to|accelerat(?:e|ing)|expand(?:ing)?|roadmap|transform(?:ing|ation)?`

var strategicCategoryDefs = []strategicCategoryDef{
	{
		category:         entity.StrategicCategoryCloud,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)\bcloud\b|aws|azure|google\s+cloud|saas|iaas|paas`),
		serviceAlignment: entity.AlignmentDirectMatch,
		serviceCategory:  "Cloud Migration Services",
	},
	{
		category:         entity.StrategicCategoryModernization,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)legacy|moderniz|re-?platform|migrat(?:e|ing|ion)|aging\s+systems|technical\s+debt`),
		serviceAlignment: entity.AlignmentDirectMatch,
		serviceCategory:  "Application Modernization",
	},
	{
		category:         entity.StrategicCategoryCybersecurity,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)cyber|security|zero\s+trust|threat|identity\s+management`),
		serviceAlignment: entity.AlignmentDirectMatch,
		serviceCategory:  "Security Services",
	},
	{
		category:         entity.StrategicCategoryAIAutomation,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)artificial\s+intelligence|\bAI\b|machine\s+learning|automation|generative|\bLLM\b`),
		serviceAlignment: entity.AlignmentAdjacent,
		serviceCategory:  "AI & Data Services",
	},
	{
		category:         entity.StrategicCategoryTransformation,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)digital\s+transformation|digitiz|digital\s+initiative|digital\s+capabilit`),
		serviceAlignment: entity.AlignmentAdjacent,
		serviceCategory:  "Digital Advisory",
	},
	{
		category:         entity.StrategicCategoryInfrastructure,
		intentPattern:    regexp.MustCompile(strategicIntentFragment),
		techPattern:      regexp.MustCompile(`(?i)infrastructure|data\s+center|network|hardware|\bERP\b`),
		serviceAlignment: entity.AlignmentMonitor,
		serviceCategory:  "Infrastructure Services",
	},
}

// StrategicParser mines forward-looking technology investment statements from
// management discussion text.
type StrategicParser struct {
	logger *logger.Logger
}

// NewStrategicParser creates a new StrategicParser.
func NewStrategicParser(log *logger.Logger) *StrategicParser {
	return &StrategicParser{logger: log}
}

// Parse extracts strategic priorities from MD&A text of the given source
// filing.
func (p *StrategicParser) Parse(sectionText, sourceForm string, sourceDate time.Time) []entity.StrategicPriority {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var priorities []entity.StrategicPriority
	seen := make(map[string]bool)

	for _, sentence := range splitSentenceChunks(sectionText) {
		if len(priorities) >= maxStrategicPriorities {
			break
		}
		if len(sentence) < minPrioritySentenceLen || len(sentence) > maxPrioritySentenceLen {
			continue
		}

		for _, def := range strategicCategoryDefs {
			if !def.intentPattern.MatchString(sentence) || !def.techPattern.MatchString(sentence) {
				continue
			}

			dedupeKey := def.category + "|" + prefixOf(sentence, priorityDedupePrefix)
			if seen[dedupeKey] {
				break
			}
			seen[dedupeKey] = true

			priority := entity.StrategicPriority{
				Statement:        utils.CollapseWhitespace(sentence),
				Category:         def.category,
				SourceForm:       sourceForm,
				SourceDate:       sourceDate,
				ServiceAlignment: def.serviceAlignment,
				ServiceCategory:  def.serviceCategory,
			}
			if amount, ok := LargestDollarAmount(sentence); ok {
				priority.Budget = amount.Display
			}
			priorities = append(priorities, priority)
			break
		}
	}

	return priorities
}

func prefixOf(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
