package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"sales-intel-scryper/internal/entity"
	"sales-intel-scryper/internal/intel/config"
	"sales-intel-scryper/internal/intel/dto"
	"sales-intel-scryper/pkg/common"
	"sales-intel-scryper/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ErrCompanyNotFound indicates the search term did not resolve to a regulated
// filer. Callers must short-circuit the pipeline, not treat it as a failure.
var ErrCompanyNotFound = errors.New("company not found in SEC directory")

const tickerDirectoryCacheKey = "edgar:ticker_directory"

// EdgarRepository defines the interface for all SEC EDGAR fetches.
type EdgarRepository interface {
	ResolveCompany(ctx context.Context, query string) (*entity.CompanyIdentity, error)
	GetSubmissions(ctx context.Context, cik string) (*dto.SubmissionsResponse, error)
	GetFilingDocument(ctx context.Context, cik, accessionNumber string) (string, error)
	GetCompanyFacts(ctx context.Context, cik string) (*dto.CompanyFactsResponse, error)
}

// NewEdgarRepository creates a new EdgarRepository backed by the public SEC
// endpoints. All requests share one rate limiter per SEC fair access rules.
func NewEdgarRepository(cfg config.Edgar, log *logger.Logger) EdgarRepository {
	return &edgarRepository{
		cfg:     cfg,
		logger:  log,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRequestPerSecond), cfg.MaxRequestPerSecond),
		// The ticker directory is ~1MB of JSON that changes rarely; keep the
		// decoded form in memory instead of re-fetching per lookup.
		directoryCache: cache.New(cfg.TickerDirectoryTTL, 2*cfg.TickerDirectoryTTL),
	}
}

type edgarRepository struct {
	cfg            config.Edgar
	logger         *logger.Logger
	client         *http.Client
	limiter        *rate.Limiter
	directoryCache *cache.Cache
}

// ResolveCompany maps a free-text company name or ticker to its CIK. An exact
// ticker match wins; otherwise the first directory entry whose title contains
// the search term (case-insensitive) is taken. Ambiguous names resolve to the
// match with the lowest CIK.
func (r *edgarRepository) ResolveCompany(ctx context.Context, query string) (*entity.CompanyIdentity, error) {
	directory, err := r.getTickerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	identity := matchDirectory(directory, query)
	if identity == nil {
		return nil, ErrCompanyNotFound
	}
	return identity, nil
}

// matchDirectory scans a CIK-ordered directory: exact ticker match first, then
// case-insensitive title substring.
func matchDirectory(directory []dto.TickerDirectoryEntry, query string) *entity.CompanyIdentity {
	upperQuery := strings.ToUpper(strings.TrimSpace(query))
	if upperQuery == "" {
		return nil
	}

	for _, e := range directory {
		if strings.ToUpper(e.Ticker) == upperQuery {
			return &entity.CompanyIdentity{
				CIK:    PadCIK(e.CIK),
				Name:   e.Title,
				Ticker: e.Ticker,
			}
		}
	}

	lowerQuery := strings.ToLower(strings.TrimSpace(query))
	for _, e := range directory {
		if strings.Contains(strings.ToLower(e.Title), lowerQuery) {
			return &entity.CompanyIdentity{
				CIK:    PadCIK(e.CIK),
				Name:   e.Title,
				Ticker: e.Ticker,
			}
		}
	}

	return nil
}

// GetSubmissions fetches the filer's full submission history.
func (r *edgarRepository) GetSubmissions(ctx context.Context, cik string) (*dto.SubmissionsResponse, error) {
	url := fmt.Sprintf(common.EdgarSubmissionsURL, cik)
	body, err := r.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submissions: %w", err)
	}

	var submissions dto.SubmissionsResponse
	if err := json.Unmarshal(body, &submissions); err != nil {
		return nil, fmt.Errorf("failed to parse submissions response: %w", err)
	}
	return &submissions, nil
}

// GetFilingDocument fetches the complete submission text file for one filing.
func (r *edgarRepository) GetFilingDocument(ctx context.Context, cik, accessionNumber string) (string, error) {
	accessionNoDashes := strings.ReplaceAll(accessionNumber, "-", "")
	url := fmt.Sprintf(common.EdgarArchiveDocumentURL, strings.TrimLeft(cik, "0"), accessionNoDashes, accessionNumber)

	body, err := r.get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document %s: %w", accessionNumber, err)
	}
	return string(body), nil
}

// GetCompanyFacts fetches the machine-readable XBRL facts for the filer.
func (r *edgarRepository) GetCompanyFacts(ctx context.Context, cik string) (*dto.CompanyFactsResponse, error) {
	url := fmt.Sprintf(common.EdgarCompanyFactsURL, cik)
	body, err := r.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company facts: %w", err)
	}

	var facts dto.CompanyFactsResponse
	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("failed to parse company facts response: %w", err)
	}
	return &facts, nil
}

func (r *edgarRepository) getTickerDirectory(ctx context.Context) ([]dto.TickerDirectoryEntry, error) {
	if cached, found := r.directoryCache.Get(tickerDirectoryCacheKey); found {
		return cached.([]dto.TickerDirectoryEntry), nil
	}

	body, err := r.get(ctx, common.EdgarTickerDirectoryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker directory: %w", err)
	}

	// The directory is keyed by a meaningless numeric index.
	var raw map[string]dto.TickerDirectoryEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ticker directory: %w", err)
	}

	directory := make([]dto.TickerDirectoryEntry, 0, len(raw))
	for _, e := range raw {
		directory = append(directory, e)
	}
	// Map iteration order varies between loads; sort so substring resolution
	// picks the same company every time.
	sort.Slice(directory, func(i, j int) bool { return directory[i].CIK < directory[j].CIK })

	r.directoryCache.Set(tickerDirectoryCacheKey, directory, cache.DefaultExpiration)
	r.logger.Info("Loaded SEC ticker directory", logger.IntField("entries", len(directory)))
	return directory, nil
}

func (r *edgarRepository) get(ctx context.Context, url string) ([]byte, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// SEC rejects requests without a descriptive User-Agent.
	req.Header.Set("User-Agent", r.cfg.UserAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	r.logger.Debug("EDGAR fetch completed",
		logger.StringField("url", url),
		logger.IntField("bytes", len(body)),
		logger.Field("elapsed", time.Since(start)),
	)
	return body, nil
}

// PadCIK zero-pads a numeric CIK to the 10 digits EDGAR endpoints expect.
func PadCIK(cik int) string {
	return fmt.Sprintf("%010d", cik)
}
