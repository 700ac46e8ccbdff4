package mepreal

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Observation is a single dated value of a time series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a chronological sequence of observations, unique by date and
// sorted ascending. Build one with NewSeries, which enforces both properties
// and drops invalid values; transformations return new series.
type Series []Observation

// NewSeries builds a series from raw observations.
//
// Dates are truncated to the day, non-positive and NaN values are dropped,
// duplicate dates keep the last occurrence, and the result is sorted
// ascending by date.
func NewSeries(points ...Observation) Series {
	byDate := make(map[time.Time]int, len(points))
	s := make(Series, 0, len(points))
	for _, p := range points {
		if math.IsNaN(p.Value) || p.Value <= 0 {
			continue
		}
		day := DayOf(p.Date)
		if i, ok := byDate[day]; ok {
			// Same date seen again: the last value wins.
			s[i].Value = p.Value
			continue
		}
		byDate[day] = len(s)
		s = append(s, Observation{Date: day, Value: p.Value})
	}
	s.sort()
	return s
}

// sort orders the series ascending by date, in place.
func (s Series) sort() {
	slices.SortFunc(s, func(a, b Observation) int { return a.Date.Compare(b.Date) })
}

// Len returns the number of observations in the series.
func (s Series) Len() int { return len(s) }

// First returns the earliest observation, or false when the series is empty.
func (s Series) First() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[0], true
}

// Last returns the latest observation, or false when the series is empty.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// At returns the observation on exactly the given day.
func (s Series) At(day time.Time) (Observation, bool) {
	day = DayOf(day)
	i, found := slices.BinarySearchFunc(s, day, func(o Observation, t time.Time) int {
		return o.Date.Compare(t)
	})
	if !found {
		return Observation{}, false
	}
	return s[i], true
}

// AsOf returns the observation on the given day, or the most recent one
// before it. It returns false when no observation exists on or before the day.
func (s Series) AsOf(day time.Time) (Observation, bool) {
	day = DayOf(day)
	i, found := slices.BinarySearchFunc(s, day, func(o Observation, t time.Time) int {
		return o.Date.Compare(t)
	})
	if found {
		return s[i], true
	}
	// Not found. i is the index where day would be inserted, so the last
	// observation before the target is at i-1.
	if i == 0 {
		return Observation{}, false
	}
	return s[i-1], true
}

// Monthly returns the series truncated to monthly granularity: every date is
// moved to the first day of its month and the latest value within a month
// wins. Index values are published once per month but often carry a mid-month
// publication date.
func (s Series) Monthly() Series {
	points := make([]Observation, len(s))
	for i, o := range s {
		points[i] = Observation{Date: MonthOf(o.Date), Value: o.Value}
	}
	return NewSeries(points...)
}

// Scale returns a copy of the series with every value multiplied by k.
func (s Series) Scale(k float64) Series {
	points := make([]Observation, len(s))
	for i, o := range s {
		points[i] = Observation{Date: o.Date, Value: o.Value * k}
	}
	return NewSeries(points...)
}

// DayOf truncates a time to its calendar day, at midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MonthOf truncates a time to the first day of its calendar month, at
// midnight UTC.
func MonthOf(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a calendar day in ISO format ("2006-01-02"), tolerating a
// trailing time part as some providers timestamp their daily records.
func ParseDay(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", s, err)
	}
	return t, nil
}

// ParseValue parses a number that may use either '.' or ',' as the decimal
// separator. Some providers localize their figures.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

// Number is a float64 that unmarshals from a JSON number or from a string in
// either decimal notation. Unparseable strings decode to zero so that the
// row is filtered out with the other invalid observations instead of failing
// the whole response.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := ParseValue(s)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into a number", string(data))
}
