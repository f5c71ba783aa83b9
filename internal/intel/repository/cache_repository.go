package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/pkg/common"
	"sales-intel-scryper/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheRepository defines the interface for the SEC data cache store. An
// expired entry is indistinguishable from a miss: Get returns (nil, nil) for
// both. Set overwrites any existing entry for the CIK.
type CacheRepository interface {
	Get(ctx context.Context, cik string) (*entity.SECData, error)
	Set(ctx context.Context, cik string, data *entity.SECData, dominantFilingType string) error
	Delete(ctx context.Context, cik string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// TTLForFilingType returns the cache duration for the dominant filing type
// behind an entry. Annual reports age slowest, event filings fastest.
func TTLForFilingType(filingType string) time.Duration {
	switch filingType {
	case entity.FilingTypeAnnual:
		return common.CacheTTLAnnual
	case entity.FilingTypeQuarterly:
		return common.CacheTTLQuarterly
	case entity.FilingTypeEvent:
		return common.CacheTTLEvent
	default:
		return common.CacheTTLDefault
	}
}

// NewPostgresCacheRepository creates a CacheRepository backed by the
// sec_data_cache table.
func NewPostgresCacheRepository(db *gorm.DB, log *logger.Logger) CacheRepository {
	return &postgresCacheRepository{db: db, logger: log}
}

type postgresCacheRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func (r *postgresCacheRepository) Get(ctx context.Context, cik string) (*entity.SECData, error) {
	var row entity.SECDataCache
	result := r.db.WithContext(ctx).Where("cik = ?", cik).First(&row)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if row.IsExpired(time.Now()) {
		return nil, nil
	}

	var data entity.SECData
	if err := json.Unmarshal(row.Payload, &data); err != nil {
		// A corrupt payload is treated as a miss so the pipeline re-runs and
		// overwrites it.
		r.logger.Warn("Discarding unreadable cache payload", logger.StringField("cik", cik), logger.ErrorField(err))
		return nil, nil
	}

	cachedAt := row.CachedAt
	expiresAt := row.ExpiresAt
	data.CachedAt = &cachedAt
	data.ExpiresAt = &expiresAt
	data.IsCached = true
	return &data, nil
}

func (r *postgresCacheRepository) Set(ctx context.Context, cik string, data *entity.SECData, dominantFilingType string) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal SEC data: %w", err)
	}

	now := time.Now()
	row := entity.SECDataCache{
		CIK:                cik,
		CompanyName:        data.Company.Name,
		Ticker:             data.Company.Ticker,
		DominantFilingType: dominantFilingType,
		Payload:            payload,
		PainSignals:        data.PainSignals,
		CachedAt:           now,
		ExpiresAt:          now.Add(TTLForFilingType(dominantFilingType)),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cik"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (r *postgresCacheRepository) Delete(ctx context.Context, cik string) error {
	return r.db.WithContext(ctx).Where("cik = ?", cik).Delete(&entity.SECDataCache{}).Error
}

// PurgeExpired removes rows past their expiry. Expired rows already behave as
// misses; this only reclaims space.
func (r *postgresCacheRepository) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&entity.SECDataCache{})
	return result.RowsAffected, result.Error
}
