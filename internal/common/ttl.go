package common

import "time"

// Cache TTLs per key namespace
const (
	TTLQuote    = 60 * time.Second
	TTLSearch   = 3600 * time.Second
	TTLCompany  = 1800 * time.Second
	TTLHistory  = 1800 * time.Second
	TTLTrending = 180 * time.Second
	TTLCompare  = 900 * time.Second
)
