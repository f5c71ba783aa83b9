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

func newTestRiskProcessor() *RiskProcessor {
	return NewRiskProcessor(logger.NewNop())
}

const securityCloudParagraph = "A cybersecurity incident or data breach affecting the cloud platforms we rely on " +
	"could expose customer data, interrupt operations and damage our reputation with enterprise customers."

func TestProcessRisks_FirstCategoryWins(t *testing.T) {
	risks := newTestRiskProcessor().ProcessRisks(securityCloudParagraph, time.Now())

	// Security precedes Cloud in classification order, so a paragraph hitting
	// both is Security and only Security.
	require.Len(t, risks, 1)
	assert.Equal(t, entity.RiskCategorySecurity, risks[0].Category)
}

func TestProcessRisks_LegacyTechPrecedesSecurity(t *testing.T) {
	paragraph := "Our reliance on legacy systems increases our exposure to cybersecurity threats because " +
		"older platforms no longer receive vendor patches and are difficult to monitor effectively."

	risks := newTestRiskProcessor().ProcessRisks(paragraph, time.Now())
	require.Len(t, risks, 1)
	assert.Equal(t, entity.RiskCategoryLegacyTech, risks[0].Category)
}

func TestProcessRisks_ScoredByKeywordDensity(t *testing.T) {
	dense := "A cyber attack, ransomware event or other security incident could disrupt our operations, " +
		"and any resulting data breach may expose us to litigation and remediation costs."
	sparse := "Failure to comply with evolving compliance obligations in the jurisdictions where we operate " +
		"could subject us to penalties and reputational harm over time."
	text := sparse + "\n\n" + dense

	risks := newTestRiskProcessor().ProcessRisks(text, time.Now())
	require.Len(t, risks, 2)

	assert.Equal(t, entity.RiskCategorySecurity, risks[0].Category)
	assert.Equal(t, entity.RiskCategoryCompliance, risks[1].Category)
	assert.Greater(t, risks[0].RelevanceScore, risks[1].RelevanceScore)
	assert.GreaterOrEqual(t, len(risks[0].MatchedKeywords), 3)
}

func TestProcessRisks_CapsResults(t *testing.T) {
	var paragraphs []string
	for i := 0; i < 8; i++ {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"Risk disclosure number %d states that a data breach affecting our customer systems could "+
				"result in substantial remediation costs and loss of business.", i))
	}

	risks := newTestRiskProcessor().ProcessRisks(strings.Join(paragraphs, "\n\n"), time.Now())
	assert.Len(t, risks, 5)
}

func TestProcessRisks_ExcerptContainsMatchedKeyword(t *testing.T) {
	risks := newTestRiskProcessor().ProcessRisks(securityCloudParagraph, time.Now())
	require.Len(t, risks, 1)

	require.NotEmpty(t, risks[0].MatchedKeywords)
	assert.Contains(t, strings.ToLower(risks[0].Excerpt), risks[0].MatchedKeywords[0])
	assert.NotEmpty(t, risks[0].SalesAngle)
	assert.LessOrEqual(t, len(risks[0].Excerpt), 500)
}

func TestExtractRiskFactors_TechnologyFirst(t *testing.T) {
	general := "Adverse macroeconomic conditions could adversely affect demand for our products. " +
		"A prolonged downturn would reduce customer spending across all of our segments."
	tech := "A failure of our information technology infrastructure could interrupt operations. " +
		"Extended outage events would delay shipments and invoicing across the business."

	factors := newTestRiskProcessor().ExtractRiskFactors(general + "\n\n" + tech)
	require.Len(t, factors, 2)

	// Technology-flagged statements are surfaced before general ones
	// regardless of document order.
	assert.Contains(t, factors[0], "information technology")
	assert.Contains(t, factors[1], "macroeconomic")
}

func TestExtractRiskFactors_FiltersByLength(t *testing.T) {
	short := "Cyber risk exists."
	long := strings.Repeat("This paragraph repeats a data breach warning far beyond the raw statement limit. ", 20)

	factors := newTestRiskProcessor().ExtractRiskFactors(short + "\n\n" + long)
	assert.Empty(t, factors)
}

func TestExtractRiskFactors_EmptySection(t *testing.T) {
	assert.Nil(t, newTestRiskProcessor().ExtractRiskFactors(" "))
}
