package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"
)

func newTestLegalParser() *LegalParser {
	return NewLegalParser(logger.NewNop())
}

func TestLegalParser_NoMaterialProceedingsBoilerplate(t *testing.T) {
	texts := []string{
		"We are not currently a party to any material legal proceedings.",
		"There are no material pending legal proceedings to which the Company is a party.",
	}
	for _, text := range texts {
		assert.Nil(t, newTestLegalParser().Parse(text, time.Now()), text)
	}
}

func TestLegalParser_EmptySection(t *testing.T) {
	assert.Nil(t, newTestLegalParser().Parse("   ", time.Now()))
}

func TestLegalParser_ClassActionWithDamages(t *testing.T) {
	text := "In March 2024, a putative class action lawsuit was filed against the Company in federal court seeking damages of $50 million on behalf of purchasers of our common stock."
	filed := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	proceedings := newTestLegalParser().Parse(text, filed)
	require.Len(t, proceedings, 1)

	p := proceedings[0]
	assert.Equal(t, entity.ProceedingTypeLitigation, p.Type)
	assert.Equal(t, entity.LegalCategoryClassAction, p.Category)
	assert.Equal(t, "$50M", p.Amount)
	assert.Equal(t, 50_000_000.0, p.AmountInDollars)
	assert.False(t, p.IsITRelated)
	require.NotNil(t, p.FiledDate)
	assert.Equal(t, filed, *p.FiledDate)
}

func TestLegalParser_DescriptionCollapsesLineBreaks(t *testing.T) {
	text := "A putative class action lawsuit was filed against\nthe Company in federal court   alleging breach of\ncontract and seeking unspecified damages."

	proceedings := newTestLegalParser().Parse(text, time.Now())
	require.Len(t, proceedings, 1)
	assert.Equal(t,
		"A putative class action lawsuit was filed against the Company in federal court alleging breach of contract and seeking unspecified damages.",
		proceedings[0].Description)
}

func TestLegalParser_RegulatoryInvestigation(t *testing.T) {
	text := "The Company received a subpoena from the SEC and remains under investigation regarding its historical revenue recognition practices."

	proceedings := newTestLegalParser().Parse(text, time.Time{})
	require.Len(t, proceedings, 1)

	p := proceedings[0]
	assert.Equal(t, entity.ProceedingTypeInvestigation, p.Type)
	assert.Equal(t, entity.LegalCategoryRegulatory, p.Category)
	assert.Nil(t, p.FiledDate)
}

func TestLegalParser_AcronymNeedsWordBoundary(t *testing.T) {
	// "section" and "securities" must not trigger the SEC acronym.
	text := "A lawsuit described in this section of the report concerns securities held by a former supplier and a breach of contract claim over licensing terms."

	proceedings := newTestLegalParser().Parse(text, time.Time{})
	require.Len(t, proceedings, 1)
	assert.Equal(t, entity.LegalCategoryCommercial, proceedings[0].Category)
}

func TestLegalParser_SettlementBeatsOtherTypes(t *testing.T) {
	// Settlement language wins even when investigation words are also present.
	text := "Following a lengthy investigation, the Company entered into a settlement resolving all claims in the litigation for a payment of $12 million."

	proceedings := newTestLegalParser().Parse(text, time.Time{})
	require.Len(t, proceedings, 1)
	assert.Equal(t, entity.ProceedingTypeSettlement, proceedings[0].Type)
}

func TestLegalParser_ITRelatedFlag(t *testing.T) {
	text := "A class action lawsuit was filed against the Company arising from the 2023 data breach that exposed customer personal information to unauthorized parties."

	proceedings := newTestLegalParser().Parse(text, time.Time{})
	require.Len(t, proceedings, 1)
	assert.True(t, proceedings[0].IsITRelated)
}

func TestLegalParser_SkipsShortAndNonLegalChunks(t *testing.T) {
	text := "Lawsuit pending. The Company operates retail locations across several regions and reports results in three segments for management purposes."

	assert.Empty(t, newTestLegalParser().Parse(text, time.Time{}))
}

func TestLegalParser_CapsProceedingsPerFiling(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, "In case number %d, a lawsuit was filed against the Company alleging breach of contract over disputed licensing terms. ", i)
	}

	proceedings := newTestLegalParser().Parse(b.String(), time.Time{})
	assert.Len(t, proceedings, 10)
}
