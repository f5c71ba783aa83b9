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
	maxProceedingsPerFiling = 10
	minProceedingChunkLen   = 60
)

var (
	noMaterialProceedingsPattern = regexp.MustCompile(`(?i)(?:no|not\s+(?:currently\s+)?a\s+party\s+to\s+any)\s+material\s+(?:pending\s+)?legal\s+proceedings`)

	sentenceBoundaryPattern = regexp.MustCompile(`[.!?]\s+`)

	// Strong indicators: weak contextual overlap alone ("law", "court" in
	// passing) pulls in too many false positives.
	legalIndicatorKeywords = []string{
		"lawsuit", "litigation", "plaintiff", "defendant", "class action",
		"settlement", "complaint filed", "filed suit", "filed a complaint",
		"legal proceeding", "subpoena", "enforcement action", "consent decree",
		"investigation by", "under investigation", "civil penalty", "damages of",
		"alleging", "alleges",
	}

	settlementKeywords    = []string{"settle", "settlement", "settled", "consent decree"}
	fineKeywords          = []string{"fine", "fined", "penalty", "penalties", "sanction"}
	investigationKeywords = []string{"investigation", "investigating", "inquiry", "subpoena", "probe"}

	regulatoryAgencyKeywords = []string{
		"securities and exchange commission", "department of justice",
		"federal trade commission", "attorney general", "environmental protection agency",
		"regulatory", "antitrust", "european commission",
	}
	// Short agency acronyms need word boundaries: "sec" alone would match
	// "section" and "securities".
	regulatoryAcronymPattern = regexp.MustCompile(`\b(SEC|DOJ|FTC|EPA|CFPB|FCC|OSHA|FDA)\b`)

	classActionKeywords = []string{"class action", "securities litigation", "shareholder", "derivative action", "putative class"}
	employmentKeywords  = []string{"discrimination", "wrongful termination", "harassment", "wage", "employment practices", "former employee"}
	commercialKeywords  = []string{"breach of contract", "patent", "intellectual property", "trademark", "copyright", "licensing", "trade secret", "supplier", "commercial dispute"}

	itRelatedKeywords = []string{
		"data breach", "cyber", "cybersecurity", "privacy", "software",
		"information technology", "information security", "ransomware",
		"system outage", "technology", "personal information",
	}
)

// LegalParser mines litigation, settlement, fine and investigation records
// from legal proceedings section text.
type LegalParser struct {
	logger *logger.Logger
}

// NewLegalParser creates a new LegalParser.
func NewLegalParser(log *logger.Logger) *LegalParser {
	return &LegalParser{logger: log}
}

// Parse extracts structured proceedings from one filing's legal proceedings
// section. Output is in first-match order, capped per filing; duplicates and
// false positives are an accepted property of heuristic mining.
func (p *LegalParser) Parse(sectionText string, filedDate time.Time) []entity.LegalProceeding {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}

	// Standard boilerplate for companies with nothing to report.
	if noMaterialProceedingsPattern.MatchString(sectionText) {
		return nil
	}

	var proceedings []entity.LegalProceeding
	for _, chunk := range splitSentenceChunks(sectionText) {
		if len(proceedings) >= maxProceedingsPerFiling {
			break
		}
		if len(chunk) < minProceedingChunkLen {
			continue
		}
		lower := strings.ToLower(chunk)
		if !containsAny(lower, legalIndicatorKeywords) {
			continue
		}

		proceeding := entity.LegalProceeding{
			Description: utils.CollapseWhitespace(chunk),
			Type:        classifyProceedingType(lower),
			Category:    classifyProceedingCategory(chunk, lower),
			IsITRelated: containsAny(lower, itRelatedKeywords),
		}
		if !filedDate.IsZero() {
			d := filedDate
			proceeding.FiledDate = &d
		}
		if amount, ok := LargestDollarAmount(chunk); ok {
			proceeding.Amount = amount.Display
			proceeding.AmountInDollars = amount.Value
		}

		proceedings = append(proceedings, proceeding)
	}

	if len(proceedings) > 0 {
		p.logger.Debug("Extracted legal proceedings", logger.IntField("count", len(proceedings)))
	}
	return proceedings
}

// classifyProceedingType picks the proceeding type by keyword priority:
// settlement indicators beat fines beat investigations; everything else is
// litigation. Changing this order changes classification output.
func classifyProceedingType(lower string) string {
	switch {
	case containsAny(lower, settlementKeywords):
		return entity.ProceedingTypeSettlement
	case containsAny(lower, fineKeywords):
		return entity.ProceedingTypeFine
	case containsAny(lower, investigationKeywords):
		return entity.ProceedingTypeInvestigation
	default:
		return entity.ProceedingTypeLitigation
	}
}

func classifyProceedingCategory(chunk, lower string) string {
	switch {
	case containsAny(lower, regulatoryAgencyKeywords) || regulatoryAcronymPattern.MatchString(chunk):
		return entity.LegalCategoryRegulatory
	case containsAny(lower, classActionKeywords):
		return entity.LegalCategoryClassAction
	case containsAny(lower, employmentKeywords):
		return entity.LegalCategoryEmployment
	case containsAny(lower, commercialKeywords):
		return entity.LegalCategoryCommercial
	default:
		return entity.LegalCategoryOther
	}
}

// splitSentenceChunks splits section text into sentence-like chunks.
func splitSentenceChunks(text string) []string {
	parts := sentenceBoundaryPattern.Split(text, -1)
	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			chunks = append(chunks, p)
		}
	}
	return chunks
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
