// Package progress defines the narrow callback contract the pipeline uses
// to report coarse percent-complete. Reporting is purely observational:
// callback failures are swallowed and never influence control flow.
package progress

// Func receives coarse progress milestones. percent is 0..100 and
// non-decreasing across calls; the final call always reaches 100.
type Func func(percent int, message string)

// Reporter wraps a Func, clamping percent into a non-decreasing 0..100
// sequence and absorbing callback panics. A nil Func is valid and makes
// every call a no-op.
type Reporter struct {
	fn   Func
	last int
}

// NewReporter returns a Reporter for fn. fn may be nil.
func NewReporter(fn Func) *Reporter {
	return &Reporter{fn: fn}
}

// Report delivers a milestone. Percent values below the highest already
// reported are raised to it; values above 100 are capped.
func (r *Reporter) Report(percent int, message string) {
	if r.fn == nil {
		return
	}
	if percent < r.last {
		percent = r.last
	}
	if percent > 100 {
		percent = 100
	}
	r.last = percent

	defer func() {
		// Fire-and-forget: a panicking callback never interrupts the
		// pipeline.
		_ = recover()
	}()
	r.fn(percent, message)
}

// Done reports the final 100% milestone.
func (r *Reporter) Done(message string) {
	r.Report(100, message)
}
