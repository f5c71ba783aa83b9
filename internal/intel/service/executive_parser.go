package service

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"
)

const maxExecutiveChanges = 5

var (
	// Title fragment shared by all executive patterns.
	executiveTitleFragment = `(Chief\s+[A-Za-z]+\s+Officer|President(?:\s+and\s+[A-Za-z ]+)?|Chairman|Executive\s+Vice\s+President[A-Za-z ,]*|Senior\s+Vice\s+President[A-Za-z ,]*|General\s+Counsel|C[EFTIODS]O)`

	nameFragment = `([A-Z][a-zA-Z.'\-]+(?:\s+[A-Z][a-zA-Z.'\-]+){1,3})`

	// Appointment: verb-name-title and name-verb-title variants.
	appointmentNameFirstPattern = regexp.MustCompile(`(?:appointed|named|elected|promoted)\s+` + nameFragment + `\s+(?:as\s+|to\s+(?:the\s+position\s+of\s+|serve\s+as\s+)?)(?:its\s+|the\s+company's\s+|our\s+)?` + executiveTitleFragment)
	appointmentTitleLastPattern = regexp.MustCompile(nameFragment + `\s+(?:was|has\s+been|will\s+be)\s+(?:appointed|named|elected|promoted)\s+(?:as\s+|to\s+)?(?:its\s+|the\s+company's\s+|our\s+)?` + executiveTitleFragment)

	// Departure: noun-of-name and name-verb variants.
	departureNounPattern = regexp.MustCompile(`(?:resignation|retirement|departure|termination)\s+of\s+` + nameFragment + `(?:\s*,\s*(?:its\s+|the\s+company's\s+|our\s+)?` + executiveTitleFragment + `)?`)
	departureVerbPattern = regexp.MustCompile(nameFragment + `(?:\s*,\s*(?:its\s+|the\s+company's\s+|our\s+)?` + executiveTitleFragment + `\s*,)?\s+(?:resigned|retired|stepped\s+down|was\s+terminated|will\s+(?:resign|retire|step\s+down))`)

	effectiveDatePattern = regexp.MustCompile(`(?i)effective\s+(?:as\s+of\s+)?((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},\s+\d{4})`)

	departureReasonKeywords = []string{"retire", "resignation", "terminated", "personal reasons", "health", "pursue other opportunities", "mutual agreement"}

	technologyTitlePattern = regexp.MustCompile(`(?i)chief\s+(information|technology|digital|data|information\s+security)\s+officer|\bC(?:IO|TO|DO|ISO)\b`)
	financeChiefPattern    = regexp.MustCompile(`(?i)chief\s+(executive|financial)\s+officer|\bC[EF]O\b`)
)

// ExecutiveParser mines appointment and departure events from 8-K executive
// change sections.
type ExecutiveParser struct {
	logger *logger.Logger
	// now is swappable so tenure buckets are testable.
	now func() time.Time
}

// NewExecutiveParser creates a new ExecutiveParser.
func NewExecutiveParser(log *logger.Logger) *ExecutiveParser {
	return &ExecutiveParser{logger: log, now: time.Now}
}

// Parse extracts executive changes from one event filing's section text.
func (p *ExecutiveParser) Parse(sectionText string, filingDate time.Time) []entity.ExecutiveChange {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	var changes []entity.ExecutiveChange
	seen := make(map[string]bool)

	record := func(change entity.ExecutiveChange) {
		key := change.ChangeType + "|" + change.Name
		if seen[key] {
			return
		}
		seen[key] = true
		changes = append(changes, change)
	}

	for _, pattern := range []*regexp.Regexp{appointmentNameFirstPattern, appointmentTitleLastPattern} {
		for _, m := range pattern.FindAllStringSubmatch(sectionText, -1) {
			name, title := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			effective := p.effectiveDateNear(sectionText, name, filingDate)
			record(p.buildChange(name, title, "", entity.ChangeTypeAppointment, effective, filingDate, ""))
		}
	}

	for _, pattern := range []*regexp.Regexp{departureNounPattern, departureVerbPattern} {
		for _, m := range pattern.FindAllStringSubmatch(sectionText, -1) {
			name := strings.TrimSpace(m[1])
			title := ""
			if len(m) > 2 {
				title = strings.TrimSpace(m[2])
			}
			effective := p.effectiveDateNear(sectionText, name, filingDate)
			reason := departureReasonNear(sectionText, name)
			record(p.buildChange(name, "", title, entity.ChangeTypeDeparture, effective, filingDate, reason))
		}
	}

	return changes
}

// buildChange classifies priority and writes the sales implication for one
// parsed event.
func (p *ExecutiveParser) buildChange(name, newTitle, previousTitle, changeType string, effective, filingDate time.Time, reason string) entity.ExecutiveChange {
	change := entity.ExecutiveChange{
		Name:          name,
		NewTitle:      newTitle,
		PreviousTitle: previousTitle,
		ChangeType:    changeType,
		EffectiveDate: effective,
		FilingDate:    filingDate,
		Reason:        reason,
	}

	change.DaysInRole = DaysInRole(effective, p.now())
	title := newTitle
	if title == "" {
		title = previousTitle
	}
	change.Priority, change.SalesImplication = ClassifyExecutivePriority(title, change.DaysInRole)
	return change
}

// ClassifyExecutivePriority maps a title and tenure to a priority and a
// canned sales implication. Technology leadership is HOT with the message
// tightening as the window to engage closes; CEO/CFO moves signal strategy
// shifts; other C-suite churn is monitored.
func ClassifyExecutivePriority(title string, daysInRole int) (string, string) {
	switch {
	case technologyTitlePattern.MatchString(title):
		switch {
		case daysInRole <= 30:
			return entity.PriorityHot, "New technology leader in first 30 days: prime timing, incoming executives reassess the vendor stack immediately."
		case daysInRole <= 90:
			return entity.PriorityHot, "Technology leader still in first 90 days: good timing, budget priorities are being set now."
		case daysInRole <= 180:
			return entity.PriorityHot, "Technology leader past early tenure: monitor, initial vendor decisions may already be made."
		default:
			return entity.PriorityHot, "Technology leader is late stage in role: harder to displace incumbent vendors."
		}
	case financeChiefPattern.MatchString(title):
		return entity.PriorityWarm, "CEO/CFO change signals a potential strategic shift; watch for new initiative announcements."
	default:
		return entity.PriorityMonitor, "Leadership change worth tracking for broader organizational movement."
	}
}

// DaysInRole computes tenure from the effective date. Negative tenures
// (announced but not yet effective) clamp to zero.
func DaysInRole(effective, now time.Time) int {
	if effective.IsZero() {
		return 0
	}
	days := int(now.Sub(effective).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

// effectiveDateNear looks for an "effective as of <date>" phrase in the text
// window after the executive's name, falling back to the filing date.
func (p *ExecutiveParser) effectiveDateNear(text, name string, filingDate time.Time) time.Time {
	window := windowAfter(text, name, 400)
	if m := effectiveDatePattern.FindStringSubmatch(window); m != nil {
		if parsed, err := time.Parse("January 2, 2006", m[1]); err == nil {
			return parsed
		}
	}
	return filingDate
}

func departureReasonNear(text, name string) string {
	window := strings.ToLower(windowAfter(text, name, 400))
	for _, k := range departureReasonKeywords {
		if strings.Contains(window, k) {
			return k
		}
	}
	return ""
}

func windowAfter(text, marker string, length int) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return text
	}
	end := idx + len(marker) + length
	if end > len(text) {
		end = len(text)
	}
	return text[idx:end]
}

// SortAndCapChanges orders changes most recent filing first and caps the
// total across all scanned filings.
func SortAndCapChanges(changes []entity.ExecutiveChange) []entity.ExecutiveChange {
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].FilingDate.After(changes[j].FilingDate)
	})
	if len(changes) > maxExecutiveChanges {
		changes = changes[:maxExecutiveChanges]
	}
	return changes
}
