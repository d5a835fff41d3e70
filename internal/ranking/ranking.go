// Package ranking orders matched jobs by detailed status rank and, within a
// rank, by the date field that matters for that stage of clearance.
package ranking

import (
	"sort"
	"strings"
	"time"

	"clearance/internal/model"
	"clearance/internal/status"
)

// dateLayouts are the date and date-time formats the portal writes
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate parses a stored date string. ok is false for blank or
// unrecognized values.
func ParseDate(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortDate returns the parsed value of a job's sort field, read from the job
// or its first container
func SortDate(job *model.ShipmentJob, field string) (time.Time, bool) {
	raw, ok := job.FieldValue(field)
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(raw)
}

type keyedJob struct {
	job   model.ShipmentJob
	at    time.Time
	valid bool
}

// before orders valid dates ascending and puts missing or invalid dates
// after every valid one. Two invalid dates compare equal.
func before(a, b keyedJob) bool {
	switch {
	case a.valid && b.valid:
		return a.at.Before(b.at)
	case a.valid:
		return true
	default:
		return false
	}
}

// Order returns jobs grouped by ascending rank, each rank sorted by its sort
// field, followed by unranked jobs in their original order. Ties keep the
// original order.
func Order(jobs []model.ShipmentJob) []model.ShipmentJob {
	buckets := make([][]keyedJob, len(status.RankTable))
	var unranked []model.ShipmentJob

	for i := range jobs {
		entry, ok := status.Rank(jobs[i].DetailedStatus)
		if !ok {
			unranked = append(unranked, jobs[i])
			continue
		}

		at, valid := SortDate(&jobs[i], entry.SortField)
		idx := entry.Rank - 1
		buckets[idx] = append(buckets[idx], keyedJob{job: jobs[i], at: at, valid: valid})
	}

	ordered := make([]model.ShipmentJob, 0, len(jobs))
	for _, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return before(bucket[i], bucket[j])
		})
		for _, k := range bucket {
			ordered = append(ordered, k.job)
		}
	}

	return append(ordered, unranked...)
}
