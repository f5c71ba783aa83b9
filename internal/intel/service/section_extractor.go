package service

import (
	"regexp"
	"strings"

	"sales-intel-scryper/pkg/logger"
	"sales-intel-scryper/pkg/utils"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxSectionLength    = 40000
	executiveItemWindow = 3000
)

// Section is extracted text from one logical filing section. Found
// distinguishes "header never located" from "located but empty" — downstream
// processors skip not-found sections instead of failing.
type Section struct {
	Text  string
	Found bool
}

// FilingSections holds everything the extractor pulls from one filing
// document.
type FilingSections struct {
	RiskFactors          Section
	LegalProceedings     Section
	ManagementDiscussion Section
	ExecutiveChanges     Section
	// FiscalYearEnd is mined from boilerplate near the top of annual filings,
	// e.g. "fiscal year ended December 31, 2023".
	FiscalYearEnd string
}

// HasAny reports whether at least one target section was located.
func (s *FilingSections) HasAny() bool {
	return s.RiskFactors.Found || s.LegalProceedings.Found || s.ManagementDiscussion.Found || s.ExecutiveChanges.Found
}

var (
	riskFactorsHeaderPattern      = regexp.MustCompile(`(?i)item\s*1A[\s.:\-–—]*risk\s+factors`)
	legalProceedingsHeaderPattern = regexp.MustCompile(`(?i)item\s*[13][\s.:\-–—]*legal\s+proceedings`)
	mdnaHeaderPattern             = regexp.MustCompile(`(?i)item\s*[27][\s.:\-–—]*management'?s?\s+discussion\s+and\s+analysis`)
	executiveItemHeaderPattern    = regexp.MustCompile(`(?i)item\s*5\.02[\s.:\-–—]*`)

	// nextItemPattern marks the start of any subsequent item header, the end
	// boundary of the section being read.
	nextItemPattern = regexp.MustCompile(`(?i)item\s*\d+(\.\d+)?[A-B]?\s*[.:]`)

	fiscalYearEndPattern = regexp.MustCompile(`(?i)fiscal\s+year\s+end(?:ed|ing)?[:\s]+((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2})`)

	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	tablePattern      = regexp.MustCompile(`(?is)<table[^>]*>.*?</table>`)
	multiBlankPattern = regexp.MustCompile(`\n{3,}`)
	spaceRunPattern   = regexp.MustCompile(`[ \t\r\f]+`)
)

// SectionExtractor isolates named sections from raw filing documents.
type SectionExtractor struct {
	logger *logger.Logger
}

// NewSectionExtractor creates a new SectionExtractor.
func NewSectionExtractor(log *logger.Logger) *SectionExtractor {
	return &SectionExtractor{logger: log}
}

// Extract pulls the target sections for a filing of the given form type.
// Annual filings yield risk factors, legal proceedings, management discussion
// and a fiscal year end date; quarterly filings yield legal proceedings and
// management discussion; event filings yield the executive change item.
func (e *SectionExtractor) Extract(rawDocument, formType string) *FilingSections {
	sections := &FilingSections{}

	isAnnual := strings.HasPrefix(formType, "10-K") || strings.HasPrefix(formType, "20-F")
	isEvent := strings.HasPrefix(formType, "8-K")

	// The fiscal year end usually appears in a fixed sentence near the top,
	// and only reliably before markup stripping mangles the cover page.
	if isAnnual {
		if m := fiscalYearEndPattern.FindStringSubmatch(rawDocument); m != nil {
			sections.FiscalYearEnd = m[1]
		}
	}

	text := e.stripMarkup(rawDocument)

	if isEvent {
		sections.ExecutiveChanges = extractBoundedSection(text, executiveItemHeaderPattern, executiveItemWindow)
		return sections
	}

	if isAnnual {
		sections.RiskFactors = extractBoundedSection(text, riskFactorsHeaderPattern, maxSectionLength)
	}
	sections.LegalProceedings = extractBoundedSection(text, legalProceedingsHeaderPattern, maxSectionLength)
	sections.ManagementDiscussion = extractBoundedSection(text, mdnaHeaderPattern, maxSectionLength)

	return sections
}

// stripMarkup removes tables, tags and entity noise while preserving
// paragraph breaks, which the risk factor splitter relies on.
func (e *SectionExtractor) stripMarkup(raw string) string {
	// EDGAR documents occasionally carry broken encodings.
	withoutTables := tablePattern.ReplaceAllString(utils.CleanToValidUTF8(raw), " ")

	var text string
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withoutTables))
	if err == nil {
		doc.Find("table, script, style").Remove()
		text = doc.Text()
	} else {
		e.logger.Warn("Falling back to regex markup stripping", logger.ErrorField(err))
		text = tagPattern.ReplaceAllString(withoutTables, " ")
	}

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, " ", " ")
	text = spaceRunPattern.ReplaceAllString(text, " ")
	text = multiBlankPattern.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// extractBoundedSection returns text strictly between the header matched by
// pattern and the next item-like header, capped at maxLen. Skips table of
// contents hits by taking the last header occurrence when the first match is
// followed almost immediately by another item header.
func extractBoundedSection(text string, pattern *regexp.Regexp, maxLen int) Section {
	locs := pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return Section{}
	}

	for i := len(locs) - 1; i >= 0; i-- {
		start := locs[i][1]
		body := text[start:]
		if next := nextItemPattern.FindStringIndex(body); next != nil {
			body = body[:next[0]]
		}
		if len(body) > maxLen {
			body = body[:maxLen]
		}
		body = strings.TrimSpace(body)
		// A table-of-contents hit leaves almost nothing between headers;
		// fall through to an earlier (or later) occurrence with real body.
		if len(body) >= 200 || (i == 0 && len(body) > 0) {
			return Section{Text: body, Found: true}
		}
	}

	return Section{}
}
