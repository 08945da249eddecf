package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cvboost/scoring-system/internal/core/domain"
	"github.com/cvboost/scoring-system/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID           map[string]*domain.User
	nextID         int
	incrementCalls int
	decrementCalls int
	applyCalls     []ports.BillingUpdate
	findErr        error // if set, all finders return this error
	incrementErr   error // if set, IncrementScanCount returns this error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{byID: make(map[string]*domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindBySubscriptionID(_ context.Context, subscriptionID string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.SubscriptionID == subscriptionID && subscriptionID != "" {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ApplyBilling mirrors the real Mongo repo: absolute fields always win, the
// counter reset is skipped when the event id was already applied.
func (r *stubUserRepo) ApplyBilling(_ context.Context, userID string, update ports.BillingUpdate) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.applyCalls = append(r.applyCalls, update)

	if update.Plan != nil {
		u.Plan = *update.Plan
	}
	if update.PlanStatus != nil {
		u.PlanStatus = *update.PlanStatus
	}
	if update.PlanExpires != nil {
		u.PlanExpires = update.PlanExpires
	}
	if update.ClearExpiry {
		u.PlanExpires = nil
	}
	if update.CustomerID != "" {
		u.CustomerID = update.CustomerID
	}
	if update.SubscriptionID != "" {
		u.SubscriptionID = update.SubscriptionID
	}
	if update.ResetUsage && u.LastBillingEventID != update.EventID {
		u.Usage = domain.Usage{ResetAt: time.Now().UTC()}
		u.LastBillingEventID = update.EventID
	}
	return nil
}

// IncrementScanCount mirrors the real Mongo repo: stale counters roll over
// to the new period first, then the guarded increment applies.
func (r *stubUserRepo) IncrementScanCount(_ context.Context, userID string, kind domain.DocumentKind, limit int, periodStart time.Time) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.incrementCalls++

	if u.Usage.ResetAt.Before(periodStart) {
		u.Usage = domain.Usage{ResetAt: periodStart}
	}

	counter := &u.Usage.ResumeScans
	if kind == domain.KindProfile {
		counter = &u.Usage.ProfileScans
	}
	if limit >= 0 && *counter >= limit {
		return domain.ErrQuotaRace
	}
	*counter++
	return nil
}

func (r *stubUserRepo) DecrementScanCount(_ context.Context, userID string, kind domain.DocumentKind) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	r.decrementCalls++

	counter := &u.Usage.ResumeScans
	if kind == domain.KindProfile {
		counter = &u.Usage.ProfileScans
	}
	if *counter > 0 {
		*counter--
	}
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub analysis repository
// ---------------------------------------------------------------------------

type stubAnalysisRepo struct {
	byID      map[string]*domain.Analysis
	nextID    int
	createErr error
	saveErr   error
}

func newStubAnalysisRepo() *stubAnalysisRepo {
	return &stubAnalysisRepo{byID: make(map[string]*domain.Analysis)}
}

func (r *stubAnalysisRepo) Create(_ context.Context, a *domain.Analysis) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	id := fmt.Sprintf("analysis_%d", r.nextID)
	clone := *a
	clone.ID = id
	r.byID[id] = &clone
	return id, nil
}

func (r *stubAnalysisRepo) FindByID(_ context.Context, id string, userID string) (*domain.Analysis, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	if userID != "" && a.UserID != userID {
		return nil, domain.ErrAnalysisNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnalysisRepo) List(_ context.Context, f ports.ListAnalysesFilter) ([]*domain.Analysis, int64, error) {
	var matched []*domain.Analysis
	for _, a := range r.byID {
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.Kind != "" && string(a.Kind) != f.Kind {
			continue
		}
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Analysis{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubAnalysisRepo) SaveOptimized(_ context.Context, id string, content string, profile *domain.ProfileFields) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAnalysisNotFound
	}
	a.OptimizedContent = content
	a.OptimizedProfile = profile
	return nil
}

func (r *stubAnalysisRepo) SaveComparison(_ context.Context, id string, cmp *domain.Comparison) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAnalysisNotFound
	}
	a.Comparison = cmp
	return nil
}

// ---------------------------------------------------------------------------
// Billing stubs
// ---------------------------------------------------------------------------

type stubDedup struct {
	seen     map[string]bool
	checkErr error
	markErr  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[eventID], nil
}

func (d *stubDedup) Mark(_ context.Context, eventID string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[eventID] = true
	return nil
}

type stubBillingEventRepo struct {
	inserted []*domain.BillingEvent
}

func (r *stubBillingEventRepo) InsertEvent(_ context.Context, event *domain.BillingEvent) error {
	r.inserted = append(r.inserted, event)
	return nil
}
