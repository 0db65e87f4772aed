package availability

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

// Engine evaluates queries against table and booking snapshots.
// It holds only its settings and is safe for concurrent use.
type Engine struct {
	buffer   int
	duration int
}

func NewEngine(s Settings) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		buffer:   int(s.TurnoverBuffer / time.Minute),
		duration: int(s.DefaultDuration / time.Minute),
	}, nil
}

// Settings returns the parameters the engine was built with.
func (e *Engine) Settings() Settings {
	return Settings{
		TurnoverBuffer:  time.Duration(e.buffer) * time.Minute,
		DefaultDuration: time.Duration(e.duration) * time.Minute,
	}
}

// reservation is an existing booking with its buffered window resolved.
type reservation struct {
	booking  Booking
	window   timeslot.Interval // raw [start, end)
	buffered timeslot.Interval
}

// request is a validated query.
type request struct {
	query    Query
	window   timeslot.Interval
	buffered timeslot.Interval
}

// Check decides whether q can be seated.
//
// With a preferred table: Clear on it when none of its bookings overlap the
// request, otherwise the best free alternative (ConflictWithAlternative) or
// ConflictNoAlternative. Without one: Clear on the best free table or
// ConflictNoAlternative. Malformed input aborts with an error and no decision.
func (e *Engine) Check(q Query, tables []Table, bookings []Booking) (Decision, error) {
	req, err := e.prepare(q)
	if err != nil {
		return Decision{}, err
	}
	byTable, err := e.index(req.query, bookings)
	if err != nil {
		return Decision{}, err
	}

	if len(tables) == 0 {
		return conflictNoAlternative(nil), nil
	}

	var conflict *Booking
	if q.PreferredTableID != nil {
		idx := slices.IndexFunc(tables, func(t Table) bool { return t.ID == *q.PreferredTableID })
		if idx < 0 {
			return Decision{}, ErrTableNotFound.With(fmt.Errorf("table %d", *q.PreferredTableID))
		}
		preferred := tables[idx]

		hit, busy := firstOverlap(byTable[preferred.ID], req.buffered)
		if !busy {
			return clearOn(preferred), nil
		}
		conflict = &hit.booking
	}

	ranked := e.rankFree(req, tables, byTable)
	if len(ranked) == 0 {
		return conflictNoAlternative(conflict), nil
	}
	if conflict != nil {
		return conflictWithAlternative(*conflict, ranked[0]), nil
	}
	return clearOn(ranked[0]), nil
}

// FreeTables returns every active table with enough seats and no overlapping
// booking, tightest fit first. The preferred table is not treated specially.
func (e *Engine) FreeTables(q Query, tables []Table, bookings []Booking) ([]Table, error) {
	req, err := e.prepare(q)
	if err != nil {
		return nil, err
	}
	byTable, err := e.index(req.query, bookings)
	if err != nil {
		return nil, err
	}
	return e.rankFree(req, tables, byTable), nil
}

func (e *Engine) prepare(q Query) (request, error) {
	if q.PartySize <= 0 {
		return request{}, ErrInvalidPartySize.With(fmt.Errorf("got %d", q.PartySize))
	}
	if err := ValidateDate(q.Date); err != nil {
		return request{}, err
	}
	window, err := e.window(q.StartTime, q.EndTime)
	if err != nil {
		return request{}, err
	}
	return request{query: q, window: window, buffered: window.Widen(e.buffer)}, nil
}

func (e *Engine) window(start string, end *string) (timeslot.Interval, error) {
	s, err := timeslot.ParseTime(start)
	if err != nil {
		return timeslot.Interval{}, err
	}
	var endMin *int
	if end != nil {
		v, err := timeslot.ParseTime(*end)
		if err != nil {
			return timeslot.Interval{}, err
		}
		endMin = &v
	}
	return timeslot.NewInterval(s, endMin, e.duration), nil
}

// index keeps the bookings that can conflict with q (same date, assigned, not
// cancelled, not excluded) and groups them by table, earliest first.
func (e *Engine) index(q Query, bookings []Booking) (map[int64][]reservation, error) {
	byTable := make(map[int64][]reservation)
	for _, b := range bookings {
		if b.Date != q.Date || b.Status == StatusCancelled || b.TableID == nil {
			continue
		}
		if q.ExcludeBookingID != nil && b.ID == *q.ExcludeBookingID {
			continue
		}
		w, err := e.window(b.StartTime, b.EndTime)
		if err != nil {
			return nil, ErrCorruptBooking.With(fmt.Errorf("booking %d: %w", b.ID, err))
		}
		byTable[*b.TableID] = append(byTable[*b.TableID], reservation{
			booking:  b,
			window:   w,
			buffered: w.Widen(e.buffer),
		})
	}
	for id := range byTable {
		slices.SortStableFunc(byTable[id], func(a, b reservation) int {
			if c := cmp.Compare(a.window.Start, b.window.Start); c != 0 {
				return c
			}
			return cmp.Compare(a.booking.ID, b.booking.ID)
		})
	}
	return byTable, nil
}

func (e *Engine) rankFree(req request, tables []Table, byTable map[int64][]reservation) []Table {
	var free []Table
	for _, t := range tables {
		if !t.Active || t.Capacity < req.query.PartySize {
			continue
		}
		if _, busy := firstOverlap(byTable[t.ID], req.buffered); busy {
			continue
		}
		free = append(free, t)
	}
	Rank(free, req.query.PartySize)
	return free
}

// firstOverlap returns the earliest reservation whose buffered window
// intersects the buffered request.
func firstOverlap(rs []reservation, buffered timeslot.Interval) (reservation, bool) {
	for _, r := range rs {
		if timeslot.Overlaps(r.buffered, buffered) {
			return r, true
		}
	}
	return reservation{}, false
}

// ValidateDate checks a "YYYY-MM-DD" calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(timeslot.DateLayout, date); err != nil {
		return ErrInvalidDate.With(err)
	}
	return nil
}
