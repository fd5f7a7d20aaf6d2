package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"claims-dashboard/internal/core/logger"
	"claims-dashboard/internal/core/metrics"
	"claims-dashboard/internal/features/claims/domain"
	"claims-dashboard/internal/features/claims/ports"

	"go.uber.org/zap"
)

// User-facing error messages per source failure kind. Each kind implies a
// different remediation, so the distinction is surfaced, not flattened.
const (
	msgMissingConfig = "Configuración incompleta de Google Sheets. Revisá las variables de entorno."
	msgBadRequest    = "API Key inválida o configuración incorrecta."
	msgAccessDenied  = "Acceso denegado. Verificá que la API Key tenga permisos y que la planilla sea compartida."
	msgNotFound      = "No se encontró la planilla. Verificá el ID y el rango."
	msgGeneric       = "No se pudieron cargar los datos de los reclamos. Intente de nuevo más tarde."
)

// View is a consistent read of the store state consumed by handlers.
type View struct {
	Claims  []domain.Claim `json:"claims"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
	Filters domain.Filters `json:"filters"`
}

// ClaimsStore owns the canonical claim list, loading flag, error slot and
// filter state for the lifetime of the service. The list is replaced
// wholesale on each successful refresh cycle; it is never mutated in place.
type ClaimsStore struct {
	source    ports.ClaimSource
	snapshots ports.SnapshotRepository // optional
	metrics   *metrics.Metrics         // optional
	interval  time.Duration
	logger    *zap.Logger

	mu        sync.RWMutex
	claims    []domain.Claim
	loading   bool
	lastError string
	filters   domain.Filters
	companies []string
	reasons   []string
	stopped   bool

	// refreshing guards against overlapping cycles: a tick that fires while
	// a refresh is still in flight is skipped.
	refreshing atomic.Bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewClaimsStore creates a ClaimsStore in the loading state. The snapshot
// repository and metrics are optional and may be nil.
func NewClaimsStore(source ports.ClaimSource, snapshots ports.SnapshotRepository, m *metrics.Metrics, interval time.Duration) *ClaimsStore {
	return &ClaimsStore{
		source:    source,
		snapshots: snapshots,
		metrics:   m,
		interval:  interval,
		loading:   true,
		logger:    logger.Get(),
	}
}

// Start warms the store from the snapshot repository when available, runs an
// immediate refresh cycle, and schedules the cycle to repeat on the fixed
// interval until Stop is called or ctx is cancelled.
func (s *ClaimsStore) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.warmFromSnapshot(runCtx)

	go s.run(runCtx)
}

// Stop cancels the refresh schedule and waits for any in-flight cycle to
// finish. A cycle completing after Stop does not write into the store.
func (s *ClaimsStore) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
}

func (s *ClaimsStore) run(ctx context.Context) {
	defer close(s.done)

	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one fetch-normalize-replace cycle.
func (s *ClaimsStore) refresh(ctx context.Context) {
	if !s.refreshing.CompareAndSwap(false, true) {
		s.logger.Debug("Refresh still in flight, skipping tick")
		if s.metrics != nil {
			s.metrics.RefreshTotal.WithLabelValues("skipped").Inc()
		}
		return
	}
	defer s.refreshing.Store(false)

	start := time.Now()
	claims, err := s.source.FetchClaims(ctx)
	if err != nil {
		s.applyError(err)
		if s.metrics != nil {
			s.metrics.ObserveRefresh("error", time.Since(start))
		}
		return
	}

	if !s.applyClaims(claims) {
		s.logger.Debug("Discarding refresh result after store teardown")
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveRefresh("success", time.Since(start))
		s.metrics.ClaimsLoaded.Set(float64(len(claims)))
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, claims); err != nil {
			s.logger.Warn("Failed to persist claims snapshot", zap.Error(err))
		}
	}

	s.logger.Info("Claims refreshed", zap.Int("count", len(claims)))
}

// applyClaims replaces the record list wholesale and recomputes the derived
// lists. Returns false when the store was already torn down.
func (s *ClaimsStore) applyClaims(claims []domain.Claim) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	s.claims = claims
	s.companies = distinct(claims, func(c domain.Claim) string { return c.Company })
	s.reasons = distinct(claims, func(c domain.Claim) string { return c.Reason })
	s.lastError = ""
	s.loading = false
	return true
}

// applyError records a user-facing message and clears the loading flag while
// preserving the previous record list (stale-but-available data).
func (s *ClaimsStore) applyError(err error) {
	s.logger.Error("Refresh cycle failed", zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.lastError = userMessage(err)
	s.loading = false
}

// warmFromSnapshot loads the last persisted claim list, if any, so the
// dashboard shows last-known-good data before the first fetch completes.
func (s *ClaimsStore) warmFromSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}

	claims, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load claims snapshot", zap.Error(err))
		return
	}
	if claims == nil {
		return
	}

	if s.applyClaims(claims) {
		s.logger.Info("Warmed store from snapshot", zap.Int("count", len(claims)))
	}
}

// userMessage maps the source failure taxonomy onto operator guidance.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ports.ErrMissingConfig):
		return msgMissingConfig
	case errors.Is(err, ports.ErrBadRequest):
		return msgBadRequest
	case errors.Is(err, ports.ErrAccessDenied):
		return msgAccessDenied
	case errors.Is(err, ports.ErrNotFound):
		return msgNotFound
	default:
		return msgGeneric
	}
}

func distinct(claims []domain.Claim, key func(domain.Claim) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range claims {
		k := key(c)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a consistent view of the store state.
func (s *ClaimsStore) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{
		Claims:  s.claims,
		Loading: s.loading,
		Error:   s.lastError,
		Filters: s.filters,
	}
}

// Claims returns the canonical record list.
func (s *ClaimsStore) Claims() []domain.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.claims
}

// FilteredClaims returns the subset of the canonical list matching the
// current filter state.
func (s *ClaimsStore) FilteredClaims() []domain.Claim {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Filter(s.claims, s.filters)
}

// ClaimByNumber looks a claim up by its stable key.
func (s *ClaimsStore) ClaimByNumber(number int) (domain.Claim, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.claims {
		if c.ClaimNumber == number {
			return c, true
		}
	}
	return domain.Claim{}, false
}

// Companies returns the distinct company names, lexicographically sorted.
func (s *ClaimsStore) Companies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companies
}

// Reasons returns the distinct reason strings, lexicographically sorted.
func (s *ClaimsStore) Reasons() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reasons
}

// Filters returns the current filter state.
func (s *ClaimsStore) Filters() domain.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters replaces the filter state wholesale.
func (s *ClaimsStore) SetFilters(f domain.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
}

// ClearFilters resets the filter state to its all-empty defaults.
func (s *ClaimsStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = domain.Filters{}
}
