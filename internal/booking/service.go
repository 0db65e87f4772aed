package booking

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/notify"
	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/metrics"
	"github.com/elvisburrniku/OrderTable-sub004/internal/restaurant"
	"github.com/elvisburrniku/OrderTable-sub004/internal/table"
	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

type CreateRequest struct {
	TenantID         int64
	RestaurantID     int64
	Date             string
	StartTime        string
	EndTime          *string
	PartySize        int
	PreferredTableID *int64
	// AcceptAlternative books the suggested table when the preferred one is taken.
	AcceptAlternative bool
	Status            *Status
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	Notes             string
}

// UpdateRequest is a partial update. Changing any of Date, StartTime,
// EndTime, ClearEndTime, PartySize or TableID is a reschedule and goes
// through the availability check again.
type UpdateRequest struct {
	Date              *string
	StartTime         *string
	EndTime           *string
	ClearEndTime      bool
	PartySize         *int
	TableID           *int64
	AcceptAlternative bool
	Status            *Status
	CustomerName      *string
	CustomerEmail     *string
	CustomerPhone     *string
	Notes             *string
}

func (r UpdateRequest) reschedules() bool {
	return r.Date != nil || r.StartTime != nil || r.EndTime != nil || r.ClearEndTime ||
		r.PartySize != nil || r.TableID != nil
}

type Service interface {
	// Check runs the availability decision without writing anything.
	Check(ctx context.Context, tenantID, restaurantID int64, q availability.Query) (availability.Decision, error)
	FreeTables(ctx context.Context, tenantID, restaurantID int64, q availability.Query) ([]availability.Table, error)
	Occupancy(ctx context.Context, tenantID, restaurantID int64, date, at string) ([]availability.TableState, error)

	// Create and Update return the decision they acted on. When the decision
	// does not allow booking, the error is ErrTimeConflict and the decision
	// explains why.
	Create(ctx context.Context, req CreateRequest) (*Booking, availability.Decision, error)
	Update(ctx context.Context, tenantID, restaurantID, id int64, req UpdateRequest) (*Booking, availability.Decision, error)

	GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
}

type service struct {
	repo        Repository
	snapshots   SnapshotProvider
	tables      table.Service
	restaurants restaurant.Service
	notifier    notify.Notifier
	metrics     *metrics.Registry
	log         *zap.Logger
}

// NewService wires the booking flow. snapshots may be the repository itself
// or a cache in front of it; when it also implements Invalidator it is told
// about every committed change.
func NewService(
	repo Repository,
	snapshots SnapshotProvider,
	tables table.Service,
	restaurants restaurant.Service,
	notifier notify.Notifier,
	m *metrics.Registry,
	log *zap.Logger,
) Service {
	if snapshots == nil {
		snapshots = repo
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		repo:        repo,
		snapshots:   snapshots,
		tables:      tables,
		restaurants: restaurants,
		notifier:    notifier,
		metrics:     m,
		log:         log,
	}
}

// day is everything needed to decide for one restaurant date.
type day struct {
	restaurant *restaurant.Restaurant
	engine     *availability.Engine
	tables     []availability.Table
	bookings   []availability.Booking
}

func (s *service) load(ctx context.Context, tenantID, restaurantID int64, date string) (*day, error) {
	if err := availability.ValidateDate(date); err != nil {
		return nil, err
	}

	r, err := s.restaurants.GetByID(ctx, tenantID, restaurantID)
	if err != nil {
		return nil, err
	}
	engine, err := availability.NewEngine(s.restaurants.SettingsFor(r))
	if err != nil {
		return nil, err
	}

	tables, err := s.tables.Catalog(ctx, tenantID, restaurantID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.snapshots.Snapshot(ctx, tenantID, restaurantID, date)
	if err != nil {
		return nil, err
	}

	return &day{restaurant: r, engine: engine, tables: tables, bookings: bookings}, nil
}

func (s *service) Check(ctx context.Context, tenantID, restaurantID int64, q availability.Query) (availability.Decision, error) {
	d, err := s.load(ctx, tenantID, restaurantID, q.Date)
	if err != nil {
		return availability.Decision{}, err
	}

	decision, err := d.engine.Check(q, d.tables, d.bookings)
	if err != nil {
		return availability.Decision{}, err
	}
	s.metrics.RecordDecision(string(decision.Kind))
	return decision, nil
}

func (s *service) FreeTables(ctx context.Context, tenantID, restaurantID int64, q availability.Query) ([]availability.Table, error) {
	d, err := s.load(ctx, tenantID, restaurantID, q.Date)
	if err != nil {
		return nil, err
	}
	return d.engine.FreeTables(q, d.tables, d.bookings)
}

func (s *service) Occupancy(ctx context.Context, tenantID, restaurantID int64, date, at string) ([]availability.TableState, error) {
	d, err := s.load(ctx, tenantID, restaurantID, date)
	if err != nil {
		return nil, err
	}
	return d.engine.Occupancy(date, at, d.tables, d.bookings)
}

// decide runs the check for q and returns the table to commit on.
func (s *service) decide(d *day, q availability.Query, acceptAlternative bool) (availability.Table, availability.Decision, error) {
	decision, err := d.engine.Check(q, d.tables, d.bookings)
	if err != nil {
		return availability.Table{}, availability.Decision{}, err
	}
	s.metrics.RecordDecision(string(decision.Kind))

	start, err := timeslot.ParseTime(q.StartTime)
	if err != nil {
		return availability.Table{}, decision, err
	}
	if !d.restaurant.OpenAt(start) {
		return availability.Table{}, decision, ErrOutsideOpeningHours
	}

	chosen, ok := decision.Usable()
	if !ok || (decision.Kind == availability.KindConflictWithAlternative && !acceptAlternative) {
		return availability.Table{}, decision, ErrTimeConflict
	}
	return chosen, decision, nil
}

// guardFor re-runs the engine pinned to the chosen table against the day as
// the commit transaction sees it.
func guardFor(d *day, q availability.Query, tableID int64) Guard {
	q.PreferredTableID = &tableID
	return func(bookings []availability.Booking) error {
		decision, err := d.engine.Check(q, d.tables, bookings)
		if err != nil {
			return err
		}
		if decision.Kind != availability.KindClear {
			return ErrTimeConflict
		}
		return nil
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, availability.Decision, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, availability.Decision{}, ErrInvalidInput.With(errors.New("customer name is required"))
	}
	status := StatusPending
	if req.Status != nil {
		if *req.Status != StatusPending && *req.Status != StatusConfirmed {
			return nil, availability.Decision{}, ErrInvalidStatus
		}
		status = *req.Status
	}

	q := availability.Query{
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		PartySize:        req.PartySize,
		PreferredTableID: req.PreferredTableID,
	}

	d, err := s.load(ctx, req.TenantID, req.RestaurantID, q.Date)
	if err != nil {
		return nil, availability.Decision{}, err
	}

	chosen, decision, err := s.decide(d, q, req.AcceptAlternative)
	if err != nil {
		return nil, decision, err
	}

	b := &Booking{
		TenantID:      req.TenantID,
		RestaurantID:  req.RestaurantID,
		TableID:       &chosen.ID,
		Date:          req.Date,
		StartTime:     canonicalTime(req.StartTime),
		EndTime:       canonicalEnd(req.EndTime),
		PartySize:     req.PartySize,
		Status:        status,
		CustomerName:  name,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Notes:         req.Notes,
	}

	if err := s.repo.CreateGuarded(ctx, b, guardFor(d, q, chosen.ID)); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.metrics.RecordCommitConflict()
		}
		return nil, decision, err
	}

	s.resync(ctx, b, notify.EventBookingCreated, "")
	return b, decision, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, restaurantID, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, tenantID, restaurantID, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Date != "" {
		if err := availability.ValidateDate(filter.Date); err != nil {
			return nil, 0, err
		}
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, tenantID, restaurantID, id int64, req UpdateRequest) (*Booking, availability.Decision, error) {
	b, err := s.repo.GetByID(ctx, tenantID, restaurantID, id)
	if err != nil {
		return nil, availability.Decision{}, err
	}
	previousDate := b.Date

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, availability.Decision{}, ErrInvalidStatus
		}
		if !CanTransition(b.Status, *req.Status) {
			return nil, availability.Decision{}, ErrInvalidTransition
		}
	}

	var guard Guard
	var decision availability.Decision

	if req.reschedules() {
		if isClosed(b.Status) || (req.Status != nil && isClosed(*req.Status)) {
			return nil, availability.Decision{}, ErrClosedBooking
		}

		q := availability.Query{
			Date:             b.Date,
			StartTime:        b.StartTime,
			EndTime:          b.EndTime,
			PartySize:        b.PartySize,
			PreferredTableID: b.TableID,
			ExcludeBookingID: &b.ID,
		}
		if req.Date != nil {
			q.Date = *req.Date
		}
		if req.StartTime != nil {
			q.StartTime = *req.StartTime
		}
		if req.ClearEndTime {
			q.EndTime = nil
		} else if req.EndTime != nil {
			q.EndTime = req.EndTime
		}
		if req.PartySize != nil {
			q.PartySize = *req.PartySize
		}
		if req.TableID != nil {
			q.PreferredTableID = req.TableID
		}

		d, err := s.load(ctx, tenantID, restaurantID, q.Date)
		if err != nil {
			return nil, availability.Decision{}, err
		}

		var chosen availability.Table
		chosen, decision, err = s.decide(d, q, req.AcceptAlternative)
		if err != nil {
			return nil, decision, err
		}

		b.Date = q.Date
		b.StartTime = canonicalTime(q.StartTime)
		b.EndTime = canonicalEnd(q.EndTime)
		b.PartySize = q.PartySize
		b.TableID = &chosen.ID
		guard = guardFor(d, q, chosen.ID)
	}

	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.CustomerName != nil {
		name := strings.TrimSpace(*req.CustomerName)
		if name == "" {
			return nil, decision, ErrInvalidInput.With(errors.New("customer name is required"))
		}
		b.CustomerName = name
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.UpdateGuarded(ctx, b, guard); err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.metrics.RecordCommitConflict()
		}
		return nil, decision, err
	}

	s.resync(ctx, b, notify.EventBookingUpdated, previousDate)
	return b, decision, nil
}

// resync drops cached snapshots the write touched and tells the customer.
// Neither step can fail the request.
func (s *service) resync(ctx context.Context, b *Booking, event notify.EventType, previousDate string) {
	if inv, ok := s.snapshots.(Invalidator); ok {
		inv.Invalidate(ctx, b.TenantID, b.RestaurantID, b.Date)
		if previousDate != "" && previousDate != b.Date {
			inv.Invalidate(ctx, b.TenantID, b.RestaurantID, previousDate)
		}
	}

	err := s.notifier.Notify(ctx, notify.Event{
		Type:         event,
		TenantID:     b.TenantID,
		RestaurantID: b.RestaurantID,
		BookingID:    b.ID,
		Customer:     b.CustomerName,
		Email:        b.CustomerEmail,
		Phone:        b.CustomerPhone,
		Date:         b.Date,
		StartTime:    b.StartTime,
		TableID:      b.TableID,
		Status:       string(b.Status),
	})
	if err != nil {
		s.metrics.RecordNotifyFailure()
		s.log.Warn("customer notification failed",
			zap.Int64("booking_id", b.ID),
			zap.String("event", string(event)),
			zap.Error(err),
		)
	}
}

func isClosed(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// canonicalTime stores validated times zero-padded ("9:05" becomes "09:05").
func canonicalTime(t string) string {
	m, err := timeslot.ParseTime(t)
	if err != nil {
		return t
	}
	return timeslot.FormatTime(m)
}

func canonicalEnd(t *string) *string {
	if t == nil {
		return nil
	}
	c := canonicalTime(*t)
	return &c
}
