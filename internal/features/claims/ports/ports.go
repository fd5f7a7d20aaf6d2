package ports

import (
	"context"
	"errors"

	"claims-dashboard/internal/features/claims/domain"
)

// Source failure taxonomy. Each kind implies a different remediation for the
// operator, so adapters must classify into these sentinels.
var (
	// ErrMissingConfig indicates required fetch parameters are absent or
	// still carry placeholder values. No network call was made.
	ErrMissingConfig = errors.New("source configuration missing or incomplete")
	// ErrBadRequest indicates the source rejected the request, typically a
	// malformed or invalid API key.
	ErrBadRequest = errors.New("bad request or invalid API key")
	// ErrAccessDenied indicates the source refused access, typically a
	// sharing or permission misconfiguration.
	ErrAccessDenied = errors.New("access denied by source")
	// ErrNotFound indicates the spreadsheet or range does not exist.
	ErrNotFound = errors.New("source resource not found")
)

// ClaimSource is the secondary port for fetching one normalized snapshot of
// claims per refresh cycle.
type ClaimSource interface {
	// FetchClaims retrieves the raw tabular snapshot and returns it
	// normalized. An empty source yields an empty slice, not an error.
	FetchClaims(ctx context.Context) ([]domain.Claim, error)
	// HealthCheck verifies the source is reachable and readable.
	HealthCheck(ctx context.Context) error
}

// SnapshotRepository persists the latest normalized claim list so a restarted
// service can show last-known-good data before its first fetch completes.
type SnapshotRepository interface {
	// Save stores the claim list, replacing any previous snapshot.
	Save(ctx context.Context, claims []domain.Claim) error
	// Load returns the stored claim list, or (nil, nil) when no snapshot
	// exists.
	Load(ctx context.Context) ([]domain.Claim, error)
}
