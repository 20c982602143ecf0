package xbrl

import "time"

// PeriodBucket classifies a duration's day count into the buckets the
// Stitching Engine's quarterization uses (spec.md §4.1). The bands are
// wide to accommodate 13-week fiscal quarters and 52/53-week years.
type PeriodBucket string

const (
	BucketQuarter PeriodBucket = "QUARTER"
	BucketYTD6M   PeriodBucket = "YTD_6M"
	BucketYTD9M   PeriodBucket = "YTD_9M"
	BucketAnnual  PeriodBucket = "ANNUAL"
	BucketOther   PeriodBucket = "OTHER"
	BucketInstant PeriodBucket = "INSTANT"
)

// ClassifyDuration buckets a [start, end) duration by day count.
// Unclassifiable spans are returned as BucketOther and excluded from
// quarterization by the Stitching Engine.
func ClassifyDuration(start, end time.Time) PeriodBucket {
	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days >= 70 && days <= 120:
		return BucketQuarter
	case days >= 140 && days <= 240:
		return BucketYTD6M
	case days >= 230 && days <= 330:
		return BucketYTD9M
	case days >= 330 && days <= 420:
		return BucketAnnual
	default:
		return BucketOther
	}
}

// FiscalPeriod is FY, Q1, Q2, Q3, or Q4 (spec.md §3 Fact fields).
type FiscalPeriod string

const (
	FY FiscalPeriod = "FY"
	Q1 FiscalPeriod = "Q1"
	Q2 FiscalPeriod = "Q2"
	Q3 FiscalPeriod = "Q3"
	Q4 FiscalPeriod = "Q4"
)

// Period is the period assertion inside a Context: either an instant
// date or a [start, end) duration.
type Period struct {
	Instant bool
	Start   time.Time // zero for instants
	End     time.Time // the instant date, or the duration end
}

// Bucket classifies this period using ClassifyDuration, or returns
// BucketInstant for instant periods.
func (p Period) Bucket() PeriodBucket {
	if p.Instant {
		return BucketInstant
	}
	return ClassifyDuration(p.Start, p.End)
}

// Equal reports whether two periods assert the same instant or
// duration, used by Context equality (spec.md §3 "Two contexts are
// equal iff all three components match").
func (p Period) Equal(o Period) bool {
	if p.Instant != o.Instant {
		return false
	}
	if p.Instant {
		return p.End.Equal(o.End)
	}
	return p.Start.Equal(o.Start) && p.End.Equal(o.End)
}
