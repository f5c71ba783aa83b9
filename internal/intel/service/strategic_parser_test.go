package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/logger"
)

func newTestStrategicParser() *StrategicParser {
	return NewStrategicParser(logger.NewNop())
}

func TestStrategicParser_CloudInvestmentWithBudget(t *testing.T) {
	text := "We plan to invest $500 million in cloud migration over the next three years to reduce our data center footprint."
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	priorities := newTestStrategicParser().Parse(text, "10-K", date)
	require.Len(t, priorities, 1)

	p := priorities[0]
	assert.Equal(t, entity.StrategicCategoryCloud, p.Category)
	assert.Equal(t, entity.AlignmentDirectMatch, p.ServiceAlignment)
	assert.Equal(t, "Cloud Migration Services", p.ServiceCategory)
	assert.Equal(t, "$500M", p.Budget)
	assert.Equal(t, "10-K", p.SourceForm)
	assert.Equal(t, date, p.SourceDate)
}

func TestStrategicParser_DescriptiveMentionRejected(t *testing.T) {
	// Technology words without forward-looking intent language are noise.
	text := "Our cloud products are used by thousands of enterprise customers and generated most of our subscription revenue."

	assert.Empty(t, newTestStrategicParser().Parse(text, "10-K", time.Now()))
}

func TestStrategicParser_IntentWithoutTechnologyRejected(t *testing.T) {
	text := "We plan to open additional retail locations in several new markets during the upcoming fiscal period."

	assert.Empty(t, newTestStrategicParser().Parse(text, "10-K", time.Now()))
}

func TestStrategicParser_AIIsAdjacentOpportunity(t *testing.T) {
	text := "We are committed to embedding machine learning capabilities across our product portfolio during fiscal 2026."

	priorities := newTestStrategicParser().Parse(text, "10-Q", time.Now())
	require.Len(t, priorities, 1)
	assert.Equal(t, entity.StrategicCategoryAIAutomation, priorities[0].Category)
	assert.Equal(t, entity.AlignmentAdjacent, priorities[0].ServiceAlignment)
}

func TestStrategicParser_FirstCategoryWins(t *testing.T) {
	// Cloud precedes Cybersecurity in classification order.
	text := "Our strategy prioritizes moving security workloads onto cloud infrastructure operated by established providers."

	priorities := newTestStrategicParser().Parse(text, "10-K", time.Now())
	require.Len(t, priorities, 1)
	assert.Equal(t, entity.StrategicCategoryCloud, priorities[0].Category)
}

func TestStrategicParser_DeduplicatesRepeatedStatements(t *testing.T) {
	sentence := "We are investing heavily in cloud infrastructure to support growth in our subscription business this year"
	text := sentence + ". " + sentence + "."

	priorities := newTestStrategicParser().Parse(text, "10-K", time.Now())
	assert.Len(t, priorities, 1)
}

func TestStrategicParser_CapsPriorities(t *testing.T) {
	var b strings.Builder
	topics := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta"}
	for _, topic := range topics {
		b.WriteString("We plan to invest in cloud capacity for the " + topic + " product line to support expected customer growth. ")
	}

	priorities := newTestStrategicParser().Parse(b.String(), "10-K", time.Now())
	assert.Len(t, priorities, 5)
}

func TestStrategicParser_SentenceLengthBounds(t *testing.T) {
	tooShort := "We plan to invest in cloud."
	tooLong := "We plan to invest in cloud infrastructure " + strings.Repeat("and related supporting capabilities ", 15) + "to support growth."

	assert.Empty(t, newTestStrategicParser().Parse(tooShort, "10-K", time.Now()))
	assert.Empty(t, newTestStrategicParser().Parse(tooLong, "10-K", time.Now()))
}
