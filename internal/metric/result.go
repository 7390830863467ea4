// Package metric computes per-pair travel metrics between an origin and a
// destination point.
package metric

import "strconv"

// Reason names why a metric could not be measured.
type Reason string

// Known failure reasons. Provider element statuses other than these are
// passed through unchanged.
const (
	ReasonZeroResults       Reason = "ZERO_RESULTS"
	ReasonNotFound          Reason = "NOT_FOUND"
	ReasonEmptyList         Reason = "EMPTY_LIST"
	ReasonInvalidCoordinate Reason = "INVALID_COORDINATE"
	ReasonUnknown           Reason = "UNKNOWN_ERROR"
)

// Result is either a measured value or a failure reason, never both.
type Result struct {
	value  float64
	reason Reason
}

// Measured returns a successful result.
func Measured(v float64) Result {
	return Result{value: v}
}

// Failed returns a failed result. An empty reason becomes ReasonUnknown.
func Failed(reason Reason) Result {
	if reason == "" {
		reason = ReasonUnknown
	}
	return Result{reason: reason}
}

// OK reports whether the result holds a measurement.
func (r Result) OK() bool { return r.reason == "" }

// Value returns the measurement and whether there is one.
func (r Result) Value() (float64, bool) {
	return r.value, r.OK()
}

// Reason returns the failure reason, or "" for a measurement.
func (r Result) Reason() Reason { return r.reason }

// Scale multiplies a measurement by k. Failures are returned unchanged.
func (r Result) Scale(k float64) Result {
	if !r.OK() {
		return r
	}
	return Measured(r.value * k)
}

// String renders the measurement as a decimal number, or the reason.
func (r Result) String() string {
	if !r.OK() {
		return string(r.reason)
	}
	return strconv.FormatFloat(r.value, 'f', -1, 64)
}
