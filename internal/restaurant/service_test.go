package restaurant

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
)

type memRepo struct {
	nextID int64
	rows   map[int64]*Restaurant
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int64]*Restaurant{}}
}

func (m *memRepo) Create(_ context.Context, r *Restaurant) error {
	m.nextID++
	r.ID = m.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, tenantID, id int64) (*Restaurant, error) {
	r, ok := m.rows[id]
	if !ok || r.TenantID != tenantID {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, filter Filter) ([]*Restaurant, int, error) {
	var out []*Restaurant
	for _, r := range m.rows {
		if r.TenantID == filter.TenantID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, r *Restaurant) error {
	if _, ok := m.rows[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	m.rows[r.ID] = &cp
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateDefaultsAndCanonicalHours(t *testing.T) {
	svc := NewService(newMemRepo(), availability.DefaultSettings())

	r, err := svc.Create(context.Background(), CreateRequest{TenantID: 1, Name: "  Trattoria  ", OpeningHoursStart: "9:00"})
	require.NoError(t, err)
	assert.Equal(t, "Trattoria", r.Name)
	assert.Equal(t, "09:00", r.OpeningHoursStart)
	assert.Equal(t, defaultClose, r.OpeningHoursEnd)
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{name: "empty name", req: CreateRequest{Name: " "}, want: ErrEmptyName},
		{name: "bad hours", req: CreateRequest{Name: "x", OpeningHoursStart: "25:00"}, want: ErrInvalidOpeningHours},
		{name: "empty hours", req: CreateRequest{Name: "x", OpeningHoursStart: "10:00", OpeningHoursEnd: "10:00"}, want: ErrInvalidOpeningHours},
		{name: "negative buffer", req: CreateRequest{Name: "x", TurnoverBufferMinutes: ptr(-1)}, want: ErrInvalidBuffer},
		{name: "zero duration", req: CreateRequest{Name: "x", DefaultDurationMinutes: ptr(0)}, want: ErrInvalidDuration},
	}

	svc := NewService(newMemRepo(), availability.DefaultSettings())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSettingsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), availability.DefaultSettings())

	plain, err := svc.Create(ctx, CreateRequest{TenantID: 1, Name: "Plain"})
	require.NoError(t, err)
	tuned, err := svc.Create(ctx, CreateRequest{TenantID: 1, Name: "Tuned", TurnoverBufferMinutes: ptr(15), DefaultDurationMinutes: ptr(90)})
	require.NoError(t, err)

	s, err := svc.Settings(ctx, 1, plain.ID)
	require.NoError(t, err)
	assert.Equal(t, availability.DefaultSettings(), s)

	s, err = svc.Settings(ctx, 1, tuned.ID)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, s.TurnoverBuffer)
	assert.Equal(t, 90*time.Minute, s.DefaultDuration)

	_, err = svc.Settings(ctx, 2, tuned.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateClearsOverride(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemRepo(), availability.DefaultSettings())

	r, err := svc.Create(ctx, CreateRequest{TenantID: 1, Name: "Tuned", TurnoverBufferMinutes: ptr(15)})
	require.NoError(t, err)

	r, err = svc.Update(ctx, 1, r.ID, UpdateRequest{ClearBuffer: true, Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.Nil(t, r.TurnoverBufferMinutes)
	assert.Equal(t, "Renamed", r.Name)

	_, err = svc.Update(ctx, 1, r.ID, UpdateRequest{OpeningHoursStart: ptr("11:00"), OpeningHoursEnd: ptr("11:00")})
	assert.ErrorIs(t, err, ErrInvalidOpeningHours)

	r, err = svc.Update(ctx, 1, r.ID, UpdateRequest{OpeningHoursStart: ptr("17:00"), OpeningHoursEnd: ptr("2:00")})
	require.NoError(t, err)
	assert.Equal(t, "17:00", r.OpeningHoursStart)
	assert.Equal(t, "02:00", r.OpeningHoursEnd)
}

func TestOpenAt(t *testing.T) {
	r := &Restaurant{OpeningHoursStart: "11:00", OpeningHoursEnd: "23:00"}
	assert.False(t, r.OpenAt(10*60+59))
	assert.True(t, r.OpenAt(11*60))
	assert.True(t, r.OpenAt(22*60+59))
	assert.False(t, r.OpenAt(23*60))
}

func TestOpenAtOvernight(t *testing.T) {
	r := &Restaurant{OpeningHoursStart: "17:00", OpeningHoursEnd: "02:00"}
	assert.False(t, r.OpenAt(16*60+59))
	assert.True(t, r.OpenAt(17*60))
	assert.True(t, r.OpenAt(23*60+59))
	assert.True(t, r.OpenAt(0))
	assert.True(t, r.OpenAt(60+59))
	assert.False(t, r.OpenAt(2*60))
	assert.False(t, r.OpenAt(12*60))
}
