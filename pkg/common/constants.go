package common

import "time"

const (
	// SEC EDGAR endpoints.
	EdgarTickerDirectoryURL = "https://www.sec.gov/files/company_tickers.json"
	EdgarSubmissionsURL     = "https://data.sec.gov/submissions/CIK%s.json"
	EdgarCompanyFactsURL    = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	EdgarArchiveDocumentURL = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s.txt"

	// Cache TTLs keyed by the dominant filing type behind an entry.
	CacheTTLAnnual    = 365 * 24 * time.Hour
	CacheTTLQuarterly = 90 * 24 * time.Hour
	CacheTTLEvent     = 7 * 24 * time.Hour
	CacheTTLDefault   = 30 * 24 * time.Hour
)
