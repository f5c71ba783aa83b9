package dto

// TickerDirectoryEntry is one row of the SEC company_tickers.json directory.
// The response is a map of index -> entry, not an array.
type TickerDirectoryEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// RecentFilings holds the parallel arrays of the submissions response. Index i
// across all slices describes one filing; the list is sorted descending by
// filing date.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// SubmissionsFilings wraps the recent filing arrays.
type SubmissionsFilings struct {
	Recent RecentFilings `json:"recent"`
}

// SubmissionsResponse is the filer submission history from
// data.sec.gov/submissions/CIK{cik}.json.
type SubmissionsResponse struct {
	CIK     string             `json:"cik"`
	Name    string             `json:"name"`
	Tickers []string           `json:"tickers"`
	Filings SubmissionsFilings `json:"filings"`
}

// FactValue is one reported value of an XBRL concept.
type FactValue struct {
	End   string  `json:"end"`
	Value float64 `json:"val"`
	Form  string  `json:"form"`
	Filed string  `json:"filed"`
	Frame string  `json:"frame,omitempty"`
}

// FactUnits maps a unit (e.g. "USD") to its reported values.
type FactUnits struct {
	Units map[string][]FactValue `json:"units"`
}

// CompanyFactsResponse is the XBRL company facts document. Facts groups
// concepts by taxonomy; the pipeline only reads "us-gaap".
type CompanyFactsResponse struct {
	CIK        int                             `json:"cik"`
	EntityName string                          `json:"entityName"`
	Facts      map[string]map[string]FactUnits `json:"facts"`
}
