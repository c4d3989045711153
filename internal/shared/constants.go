package shared

import "time"

// HTTP Client Configuration
const (
	DefaultHTTPTimeout     = 180 * time.Second
	DefaultRequestTimeout  = 120 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 10 * time.Minute
)

// Cache Configuration
const (
	UserInfoCacheTTL      = 1 * time.Minute
	ToolCatalogCacheTTL   = 30 * time.Minute
	DailyVerseCachePrefix = "scriptura:v1:verse:daily:"
)

// API Configuration
const (
	APIKeyLength        = 32
	DefaultCreditGrant  = 15
	DefaultToolCost     = 1
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Intents known to the tool registry. Tool rows in the catalog must carry one
// of these or generation requests against them fail with ErrUnknownIntent.
const (
	IntentSimplifyBibleStory = "simplify-bible-story"
	IntentSimplifyBibleVerse = "simplify-bible-verse"
)
