package config

const (
	// MaxTitleLength is the maximum length for article titles.
	MaxTitleLength = 200

	// MaxSlugLength bounds slugs including any numeric suffix.
	MaxSlugLength = 140

	// MaxSpaceKeyLength is the maximum length for space keys.
	MaxSpaceKeyLength = 64

	// MaxSpaceNameLength is the maximum length for space names.
	MaxSpaceNameLength = 120

	// MaxTagNameLength is the maximum length for tag names.
	MaxTagNameLength = 80

	// MaxContentLength bounds the content of a single version.
	MaxContentLength = 200000

	// MaxCommentLength bounds comment bodies.
	MaxCommentLength = 2000

	// MaxReasonLength bounds review rejection reasons.
	MaxReasonLength = 500

	// MaxAuditMessageLength matches the audit_events.message column.
	MaxAuditMessageLength = 300

	// MaxActorLength matches the actor columns.
	MaxActorLength = 80
)

// Retry budgets for optimistic inserts that race on a unique constraint.
const (
	MaxSlugAttempts    = 5
	MaxVersionAttempts = 3

	// MaxSlugSuffix caps the -N suffix search for a single base slug.
	MaxSlugSuffix = 1000
)

// Page sizes used when a client does not ask for one.
const (
	DefaultReviewPageSize = 10
	DefaultAuditPageSize  = 20
)
