package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorium-admin-api/internal/dto"
	"github.com/noah-isme/tutorium-admin-api/internal/models"
	appErrors "github.com/noah-isme/tutorium-admin-api/pkg/errors"
)

const filterSessionKeyPrefix = "fsess:"

// FilterSession holds one admin's draft and applied filter state together
// with the current result page. Draft edits never affect Applied until the
// session is explicitly applied.
type FilterSession struct {
	Draft   dto.PaymentFilter `json:"draft"`
	Applied dto.PaymentFilter `json:"applied"`
	Page    int               `json:"page"`
}

func newFilterSession() *FilterSession {
	return &FilterSession{
		Draft:   dto.DefaultPaymentFilter(),
		Applied: dto.DefaultPaymentFilter(),
		Page:    1,
	}
}

// FilterStateService manages per-session filter state. Sessions live in the
// cache when available and fall back to process memory otherwise.
type FilterStateService struct {
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
	loc      *time.Location
	now      func() time.Time
	ttl      time.Duration

	mu    sync.Mutex
	local map[string]*FilterSession
}

// NewFilterStateService constructs a FilterStateService.
func NewFilterStateService(cache *CacheService, loc *time.Location, ttl time.Duration, logger *zap.Logger) *FilterStateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &FilterStateService{
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		ttl:      ttl,
		local:    make(map[string]*FilterSession),
	}
}

// Get returns the session state, creating a default session when none exists.
func (s *FilterStateService) Get(ctx context.Context, sessionID string) (*FilterSession, error) {
	if session, ok := s.load(ctx, sessionID); ok {
		return session, nil
	}
	session := newFilterSession()
	s.store(ctx, sessionID, session)
	return session, nil
}

// Stage merges a validated partial update into the session's draft. The
// applied filter and page are untouched.
func (s *FilterStateService) Stage(ctx context.Context, sessionID string, update dto.PaymentFilterUpdate) (*FilterSession, error) {
	if err := s.validate.Struct(update); err != nil {
		clone := appErrors.Clone(appErrors.ErrValidation, "invalid filter update")
		clone.Err = err
		return nil, clone
	}
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.mergeDraft(&session.Draft, update)
	s.store(ctx, sessionID, session)
	return session, nil
}

// Apply promotes the draft to the applied filter and resets pagination.
func (s *FilterStateService) Apply(ctx context.Context, sessionID string) (*FilterSession, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Applied = session.Draft
	session.Page = 1
	s.store(ctx, sessionID, session)
	return session, nil
}

// Reset restores both draft and applied filters to defaults.
func (s *FilterStateService) Reset(ctx context.Context, sessionID string) (*FilterSession, error) {
	session := newFilterSession()
	s.store(ctx, sessionID, session)
	return session, nil
}

// SetPage moves the session to the requested result page.
func (s *FilterStateService) SetPage(ctx context.Context, sessionID string, page int) (*FilterSession, error) {
	if page < 1 {
		page = 1
	}
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session.Page = page
	s.store(ctx, sessionID, session)
	return session, nil
}

// mergeDraft folds the update into the draft. A preset edit wins over manual
// dates and rewrites both bounds in one step; manual date edits demote the
// preset back to custom.
func (s *FilterStateService) mergeDraft(draft *dto.PaymentFilter, update dto.PaymentFilterUpdate) {
	if update.Query != nil {
		draft.Query = *update.Query
	}
	if update.Status != nil {
		draft.Status = dto.PaymentStatus(*update.Status)
	}
	if update.Channel != nil {
		draft.Channel = dto.PaymentChannel(*update.Channel)
	}
	if update.Preset != nil {
		s.applyPreset(draft, dto.TimePreset(*update.Preset))
		return
	}
	if update.StartDate != nil {
		draft.StartDate = *update.StartDate
		draft.Preset = dto.PresetAll
	}
	if update.EndDate != nil {
		draft.EndDate = *update.EndDate
		draft.Preset = dto.PresetAll
	}
}

func (s *FilterStateService) applyPreset(draft *dto.PaymentFilter, preset dto.TimePreset) {
	draft.Preset = preset
	today := models.StartOfDay(s.now().In(s.loc), s.loc)
	const layout = "2006-01-02"
	switch preset {
	case dto.PresetToday:
		draft.StartDate = today.Format(layout)
		draft.EndDate = today.Format(layout)
	case dto.PresetWeek:
		draft.StartDate = today.AddDate(0, 0, -6).Format(layout)
		draft.EndDate = today.Format(layout)
	case dto.PresetMonth30:
		draft.StartDate = today.AddDate(0, 0, -29).Format(layout)
		draft.EndDate = today.Format(layout)
	case dto.PresetMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
		last := first.AddDate(0, 1, -1)
		draft.StartDate = first.Format(layout)
		draft.EndDate = last.Format(layout)
	default:
		draft.Preset = dto.PresetAll
		draft.StartDate = ""
		draft.EndDate = ""
	}
}

func (s *FilterStateService) load(ctx context.Context, sessionID string) (*FilterSession, bool) {
	if s.cache.Enabled() {
		var session FilterSession
		hit, err := s.cache.Get(ctx, filterSessionKeyPrefix+sessionID, &session)
		if err == nil && hit {
			if session.Page < 1 {
				session.Page = 1
			}
			return &session, true
		}
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.local[sessionID]
	if !ok {
		return nil, false
	}
	clone := *session
	return &clone, true
}

func (s *FilterStateService) store(ctx context.Context, sessionID string, session *FilterSession) {
	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, filterSessionKeyPrefix+sessionID, session, s.ttl); err != nil {
			s.logger.Warn("filter session cache write failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *session
	s.local[sessionID] = &clone
}
