package mepreal

import (
	"errors"
	"fmt"
)

// The pipeline classifies every failure into one of these categories so that
// callers can react with errors.Is without parsing messages.
var (
	// ErrSourceUnavailable reports a transport failure or a non-2xx status
	// from a provider.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSourceFormat reports a response that parsed but did not carry the
	// expected fields, which usually means the provider changed its contract.
	ErrSourceFormat = errors.New("unexpected source format")

	// ErrNoData reports a request that succeeded but yielded zero valid
	// observations after filtering.
	ErrNoData = errors.New("no usable observations")

	// ErrComposition reports that the nominal rate could not be composed
	// because one of its legs failed.
	ErrComposition = errors.New("cannot compose nominal rate")

	// ErrNoCommonDates reports that the two legs of a ratio share no date.
	ErrNoCommonDates = errors.New("no common dates between legs")

	// ErrNoOverlap reports that no nominal observation falls on or after the
	// index series' earliest date.
	ErrNoOverlap = errors.New("nominal and index series do not overlap")

	// ErrDataIntegrity reports a value that violates an invariant upstream
	// filtering should have enforced. Reaching it is a bug, not bad data.
	ErrDataIntegrity = errors.New("data integrity violation")
)

// FetchError attributes a fetch failure to a named source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Source, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }
