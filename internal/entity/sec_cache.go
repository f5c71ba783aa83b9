package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Dominant filing types used to pick a cache TTL.
const (
	FilingTypeAnnual    = "annual"
	FilingTypeQuarterly = "quarterly"
	FilingTypeEvent     = "event"
	FilingTypeNone      = "none"
)

// SECDataCache is one cached intelligence result keyed by CIK. The full
// SECData aggregate lives in Payload; pain signals are denormalized into a
// text[] column for quick inspection without unpacking the JSON.
type SECDataCache struct {
	CIK                string         `gorm:"primaryKey;column:cik" json:"cik"`
	CompanyName        string         `gorm:"not null" json:"company_name"`
	Ticker             string         `json:"ticker"`
	DominantFilingType string         `gorm:"not null" json:"dominant_filing_type"`
	Payload            datatypes.JSON `gorm:"not null" json:"payload"`
	PainSignals        pq.StringArray `gorm:"column:pain_signals;type:text[]" json:"pain_signals"`
	CachedAt           time.Time      `gorm:"not null" json:"cached_at"`
	ExpiresAt          time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the SECDataCache model.
func (SECDataCache) TableName() string {
	return "sec_data_cache"
}

// IsExpired reports whether the entry must be treated as a miss at now.
func (c *SECDataCache) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
