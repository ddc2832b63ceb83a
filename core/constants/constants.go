package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist = "auth:blacklist:"
	RedisKeyLoginAttempts  = "auth:login_attempts:"
	RedisKeyTemplateList   = "template:list:"
	RedisKeyDragSession    = "calendar:drag:"
)

// Auth limits
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
)

// Cache TTLs
const (
	TemplateCacheTTL = 10 * time.Minute
	DragSessionTTL   = 5 * time.Minute
)

// Clock layouts. All schedule times are wall-clock "HH:MM" strings in the
// provider's local day; dates are calendar dates without a time component.
const (
	ClockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// Template editor defaults
const (
	DefaultRangeStart  = "09:00"
	DefaultRangeEnd    = "10:00"
	NewRangeGapMinutes = 30
	EndOfDayMinutes    = 23*60 + 59 // 23:59
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)
