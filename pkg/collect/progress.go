package collect

// Progress reports integer completion percentages for a fixed number of
// steps. A percentage is reported only when it differs from the previous
// report, so 100 is reported exactly once, at the last step.
type Progress struct {
	total  int
	done   int
	last   int
	report func(percent int)
}

// NewProgress creates a tracker for total steps. report may be nil.
func NewProgress(total int, report func(percent int)) *Progress {
	if report == nil {
		report = func(int) {}
	}
	return &Progress{total: total, report: report}
}

// Step records one completed step and returns the current percentage and
// whether it was reported. Steps past total are ignored.
func (p *Progress) Step() (int, bool) {
	if p.done >= p.total {
		return p.last, false
	}
	p.done++
	percent := p.done * 100 / p.total
	if percent == p.last {
		return percent, false
	}
	p.last = percent
	p.report(percent)
	return percent, true
}

// Done returns the number of completed steps.
func (p *Progress) Done() int { return p.done }
