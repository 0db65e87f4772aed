package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func iv(start, end string) Interval {
	return Interval{Start: MustParseTime(start), End: MustParseTime(end)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "disjoint", a: iv("10:00", "11:00"), b: iv("12:00", "13:00"), want: false},
		{name: "touching endpoints", a: iv("10:00", "11:00"), b: iv("11:00", "12:00"), want: false},
		{name: "partial", a: iv("10:00", "11:30"), b: iv("11:00", "12:00"), want: true},
		{name: "contained", a: iv("10:00", "14:00"), b: iv("11:00", "12:00"), want: true},
		{name: "identical", a: iv("10:00", "11:00"), b: iv("10:00", "11:00"), want: true},
		{name: "one minute shared", a: iv("10:00", "11:01"), b: iv("11:00", "12:00"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	for aStart := 0; aStart < 300; aStart += 15 {
		for aLen := 15; aLen <= 120; aLen += 15 {
			a := Interval{Start: aStart, End: aStart + aLen}
			for bStart := 0; bStart < 300; bStart += 20 {
				b := Interval{Start: bStart, End: bStart + 60}
				assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "a=%v b=%v", a, b)
			}
		}
	}
}

func TestBufferedBackToBackOverlap(t *testing.T) {
	existing := iv("18:00", "20:00").Widen(60)
	start := MustParseTime("21:00")

	requested := NewInterval(start, nil, 120).Widen(60)
	assert.Equal(t, MustParseTime("20:00"), requested.Start)
	assert.Equal(t, MustParseTime("21:00"), existing.End)
	assert.True(t, Overlaps(existing, requested))
}

func TestNewInterval(t *testing.T) {
	end := MustParseTime("21:30")
	assert.Equal(t, iv("19:30", "21:30"), NewInterval(MustParseTime("19:30"), &end, 120))
	assert.Equal(t, iv("12:00", "14:00"), NewInterval(MustParseTime("12:00"), nil, 120))

	late := NewInterval(MustParseTime("23:30"), nil, 120)
	assert.Equal(t, MinutesPerDay+90, late.End)
	assert.Equal(t, 120, late.Duration())

	early := MustParseTime("01:00")
	past := NewInterval(MustParseTime("22:00"), &early, 120)
	assert.Equal(t, 180, past.Duration())
}

func TestContains(t *testing.T) {
	i := iv("19:00", "21:00")
	assert.True(t, i.Contains(MustParseTime("19:00")))
	assert.True(t, i.Contains(MustParseTime("20:59")))
	assert.False(t, i.Contains(MustParseTime("21:00")))
	assert.False(t, i.Contains(MustParseTime("18:59")))
}
