package table

import (
	"context"
	"strings"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
)

type CreateRequest struct {
	TenantID     int64
	RestaurantID int64
	RoomID       *int64
	Label        string
	Capacity     int
	Active       *bool
}

type UpdateRequest struct {
	RoomID    *int64
	ClearRoom bool
	Label     *string
	Capacity  *int
	Active    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Table, error)
	GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Table, error)
	List(ctx context.Context, filter Filter) ([]*Table, int, error)
	Update(ctx context.Context, tenantID, restaurantID, id int64, req UpdateRequest) (*Table, error)
	Delete(ctx context.Context, tenantID, restaurantID, id int64) error

	// Catalog returns every table of the restaurant in the engine's shape,
	// inactive ones included.
	Catalog(ctx context.Context, tenantID, restaurantID int64) ([]availability.Table, error)
}

type service struct {
	repo        Repository
	restService restaurant.Service
}

func NewService(repo Repository, restService restaurant.Service) Service {
	return &service{
		repo:        repo,
		restService: restService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Table, error) {
	t := &Table{
		TenantID:     req.TenantID,
		RestaurantID: req.RestaurantID,
		RoomID:       req.RoomID,
		Label:        strings.TrimSpace(req.Label),
		Capacity:     req.Capacity,
		Active:       true,
	}
	if req.Active != nil {
		t.Active = *req.Active
	}
	if err := validate(t); err != nil {
		return nil, err
	}

	// Validation: the restaurant must exist for this tenant
	if _, err := s.restService.GetByID(ctx, req.TenantID, req.RestaurantID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Table, error) {
	return s.repo.GetByID(ctx, tenantID, restaurantID, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Table, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, tenantID, restaurantID, id int64, req UpdateRequest) (*Table, error) {
	t, err := s.repo.GetByID(ctx, tenantID, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.ClearRoom {
		t.RoomID = nil
	} else if req.RoomID != nil {
		t.RoomID = req.RoomID
	}
	if req.Label != nil {
		t.Label = strings.TrimSpace(*req.Label)
	}
	if req.Capacity != nil {
		t.Capacity = *req.Capacity
	}
	if req.Active != nil {
		t.Active = *req.Active
	}

	if err := validate(t); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, tenantID, restaurantID, id int64) error {
	return s.repo.Delete(ctx, tenantID, restaurantID, id)
}

func (s *service) Catalog(ctx context.Context, tenantID, restaurantID int64) ([]availability.Table, error) {
	tables, err := s.repo.ListAll(ctx, tenantID, restaurantID)
	if err != nil {
		return nil, err
	}

	out := make([]availability.Table, len(tables))
	for i, t := range tables {
		out[i] = t.Catalog()
	}
	return out, nil
}

func validate(t *Table) error {
	if t.Label == "" {
		return ErrEmptyLabel
	}
	if t.Capacity <= 0 {
		return ErrInvalidCapacity
	}
	return nil
}
