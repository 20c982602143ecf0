package xbrl

import (
	"testing"
	"time"
)

func d(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestClassifyDuration(t *testing.T) {
	cases := []struct {
		start, end string
		want       PeriodBucket
	}{
		{"2023-01-01", "2023-03-31", BucketQuarter},
		{"2023-01-01", "2023-06-30", BucketYTD6M},
		{"2023-01-01", "2023-09-30", BucketYTD9M},
		{"2023-01-01", "2023-12-31", BucketAnnual},
		{"2023-01-01", "2023-01-15", BucketOther},
	}
	for _, tc := range cases {
		got := ClassifyDuration(d(tc.start), d(tc.end))
		if got != tc.want {
			t.Errorf("ClassifyDuration(%s, %s) = %s, want %s", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestPeriodEqual(t *testing.T) {
	a := Period{Instant: true, End: d("2023-12-31")}
	b := Period{Instant: true, End: d("2023-12-31")}
	c := Period{Start: d("2023-01-01"), End: d("2023-12-31")}
	if !a.Equal(b) {
		t.Errorf("expected equal instants")
	}
	if a.Equal(c) {
		t.Errorf("instant should not equal duration")
	}
}
