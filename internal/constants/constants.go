package constants

import "time"

// Context keys
const (
	ContextKeyActor     = "actor"
	ContextKeyClaims    = "claims"
	ContextKeyRequestID = "request_id"
)

// Headers
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// Validation
const (
	MinPasswordLength    = 8
	MaxCoverLetterLength = 5000
	MaxCompanyNoteLength = 2000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AI
const (
	MaxCoverLetterDraftWords = 250
	AIRequestTimeout         = 30 * time.Second
)
