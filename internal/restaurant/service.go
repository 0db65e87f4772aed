package restaurant

import (
	"context"
	"strings"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

const (
	defaultOpen  = "00:00"
	defaultClose = "23:59"
)

type CreateRequest struct {
	TenantID               int64
	Name                   string
	OpeningHoursStart      string
	OpeningHoursEnd        string
	TurnoverBufferMinutes  *int
	DefaultDurationMinutes *int
}

// UpdateRequest is a partial update. ClearBuffer and ClearDuration drop an
// override so the restaurant falls back to the process defaults.
type UpdateRequest struct {
	Name                   *string
	OpeningHoursStart      *string
	OpeningHoursEnd        *string
	TurnoverBufferMinutes  *int
	DefaultDurationMinutes *int
	ClearBuffer            bool
	ClearDuration          bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Restaurant, error)
	GetByID(ctx context.Context, tenantID, id int64) (*Restaurant, error)
	List(ctx context.Context, filter Filter) ([]*Restaurant, int, error)
	Update(ctx context.Context, tenantID, id int64, req UpdateRequest) (*Restaurant, error)

	// Settings resolves the engine parameters for one restaurant.
	Settings(ctx context.Context, tenantID, id int64) (availability.Settings, error)
	// SettingsFor is Settings for a restaurant the caller already loaded.
	SettingsFor(r *Restaurant) availability.Settings
}

type service struct {
	repo     Repository
	defaults availability.Settings
}

func NewService(repo Repository, defaults availability.Settings) Service {
	return &service{
		repo:     repo,
		defaults: defaults,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Restaurant, error) {
	r := &Restaurant{
		TenantID:               req.TenantID,
		Name:                   strings.TrimSpace(req.Name),
		OpeningHoursStart:      req.OpeningHoursStart,
		OpeningHoursEnd:        req.OpeningHoursEnd,
		TurnoverBufferMinutes:  req.TurnoverBufferMinutes,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
	}
	if r.OpeningHoursStart == "" {
		r.OpeningHoursStart = defaultOpen
	}
	if r.OpeningHoursEnd == "" {
		r.OpeningHoursEnd = defaultClose
	}

	if err := validate(r); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id int64) (*Restaurant, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Restaurant, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, tenantID, id int64, req UpdateRequest) (*Restaurant, error) {
	r, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		r.Name = strings.TrimSpace(*req.Name)
	}
	if req.OpeningHoursStart != nil {
		r.OpeningHoursStart = *req.OpeningHoursStart
	}
	if req.OpeningHoursEnd != nil {
		r.OpeningHoursEnd = *req.OpeningHoursEnd
	}
	if req.ClearBuffer {
		r.TurnoverBufferMinutes = nil
	} else if req.TurnoverBufferMinutes != nil {
		r.TurnoverBufferMinutes = req.TurnoverBufferMinutes
	}
	if req.ClearDuration {
		r.DefaultDurationMinutes = nil
	} else if req.DefaultDurationMinutes != nil {
		r.DefaultDurationMinutes = req.DefaultDurationMinutes
	}

	if err := validate(r); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Settings(ctx context.Context, tenantID, id int64) (availability.Settings, error) {
	r, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return availability.Settings{}, err
	}
	return s.SettingsFor(r), nil
}

func (s *service) SettingsFor(r *Restaurant) availability.Settings {
	out := s.defaults
	if r.TurnoverBufferMinutes != nil {
		out.TurnoverBuffer = time.Duration(*r.TurnoverBufferMinutes) * time.Minute
	}
	if r.DefaultDurationMinutes != nil {
		out.DefaultDuration = time.Duration(*r.DefaultDurationMinutes) * time.Minute
	}
	return out
}

func validate(r *Restaurant) error {
	if r.Name == "" {
		return ErrEmptyName
	}

	open, err := timeslot.ParseTime(r.OpeningHoursStart)
	if err != nil {
		return ErrInvalidOpeningHours.With(err)
	}
	closeAt, err := timeslot.ParseTime(r.OpeningHoursEnd)
	if err != nil {
		return ErrInvalidOpeningHours.With(err)
	}
	if open == closeAt {
		return ErrInvalidOpeningHours
	}
	// Store the canonical zero-padded form.
	r.OpeningHoursStart = timeslot.FormatTime(open)
	r.OpeningHoursEnd = timeslot.FormatTime(closeAt)

	if r.TurnoverBufferMinutes != nil && *r.TurnoverBufferMinutes < 0 {
		return ErrInvalidBuffer
	}
	if r.DefaultDurationMinutes != nil && *r.DefaultDurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
