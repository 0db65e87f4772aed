package availability

import (
	"slices"

	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

type TableStatus string

const (
	TableFree     TableStatus = "free"
	TableOccupied TableStatus = "occupied"
	TableTurnover TableStatus = "turnover"
	TableInactive TableStatus = "inactive"
)

// TableState is what a floor-plan widget needs to colour one table.
type TableState struct {
	Table   Table       `json:"table"`
	Status  TableStatus `json:"status"`
	Current *Booking    `json:"current,omitempty"`
	Next    *Booking    `json:"next,omitempty"`
}

// Occupancy reports, for every table, the booking seated at minute "at" of
// date, or whether the table is inside a turnover buffer, plus the next
// booking starting later that day. States are ordered by table label.
func (e *Engine) Occupancy(date, at string, tables []Table, bookings []Booking) ([]TableState, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	now, err := timeslot.ParseTime(at)
	if err != nil {
		return nil, err
	}
	byTable, err := e.index(Query{Date: date}, bookings)
	if err != nil {
		return nil, err
	}

	ordered := slices.Clone(tables)
	slices.SortFunc(ordered, func(a, b Table) int {
		if c := CompareLabels(a.Label, b.Label); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	states := make([]TableState, 0, len(ordered))
	for _, t := range ordered {
		st := TableState{Table: t, Status: TableFree}
		for _, r := range byTable[t.ID] {
			switch {
			case r.window.Contains(now):
				b := r.booking
				st.Current = &b
				st.Status = TableOccupied
			case st.Status == TableFree && r.buffered.Contains(now):
				st.Status = TableTurnover
			}
			if st.Next == nil && r.window.Start > now {
				b := r.booking
				st.Next = &b
			}
		}
		if !t.Active {
			st.Status = TableInactive
		}
		states = append(states, st)
	}
	return states, nil
}
