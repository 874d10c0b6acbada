package models

import (
	"sort"
	"strings"
)

// CompanyInfo is static reference data for a listed company.
type CompanyInfo struct {
	Name     string
	Sector   string
	Industry string
}

var companies = map[string]CompanyInfo{
	"AAPL":  {Name: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics"},
	"GOOGL": {Name: "Alphabet Inc.", Sector: "Technology", Industry: "Internet Content & Information"},
	"MSFT":  {Name: "Microsoft Corporation", Sector: "Technology", Industry: "Software"},
	"TSLA":  {Name: "Tesla Inc.", Sector: "Consumer Cyclical", Industry: "Auto Manufacturers"},
	"AMZN":  {Name: "Amazon.com Inc.", Sector: "Consumer Cyclical", Industry: "Internet Retail"},
	"META":  {Name: "Meta Platforms Inc.", Sector: "Technology", Industry: "Internet Content & Information"},
	"NVDA":  {Name: "NVIDIA Corporation", Sector: "Technology", Industry: "Semiconductors"},
	"NFLX":  {Name: "Netflix Inc.", Sector: "Communication Services", Industry: "Entertainment"},
	"AMD":   {Name: "Advanced Micro Devices Inc.", Sector: "Technology", Industry: "Semiconductors"},
	"INTC":  {Name: "Intel Corporation", Sector: "Technology", Industry: "Semiconductors"},
}

// LookupCompany returns the directory entry for symbol. Unknown symbols get
// a generated name with sector and industry "Unknown"; ok reports whether
// the symbol was in the directory.
func LookupCompany(symbol string) (info CompanyInfo, ok bool) {
	symbol = strings.ToUpper(symbol)
	if info, ok = companies[symbol]; ok {
		return info, true
	}
	return CompanyInfo{
		Name:     symbol + " Stock",
		Sector:   "Unknown",
		Industry: "Unknown",
	}, false
}

// KnownSymbols returns the directory's symbols sorted alphabetically.
func KnownSymbols() []string {
	out := make([]string, 0, len(companies))
	for sym := range companies {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// SymbolInfo is a search hit.
type SymbolInfo struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Region   string `json:"region"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// Analysis is the heuristic view attached to a company profile.
type Analysis struct {
	Recommendation string  `json:"recommendation"`
	Confidence     string  `json:"confidence"`
	PriceTarget    float64 `json:"priceTarget"`
	AnalystRating  int     `json:"analystRating"`
}

// CompanyProfile is a quote enriched with description and analysis.
type CompanyProfile struct {
	Quote
	Description string   `json:"description"`
	Analysis    Analysis `json:"analysis"`
}
