// Package status holds the job status taxonomy: coarse lifecycle statuses,
// detailed status labels and the rank table used to order listings.
package status

import (
	"strings"

	"clearance/internal/model"
)

// Coarse is a lifecycle bucket requested by a listing
type Coarse string

const (
	Pending   Coarse = "pending"
	Completed Coarse = "completed"
	Cancelled Coarse = "cancelled"
	All       Coarse = "all"

	// Other is what Classify reports for a job whose status is none of the above
	Other Coarse = "other"
)

// ParseCoarse lower-cases a requested status. Unrecognized values are
// returned as-is and match jobs by exact (case-insensitive) status.
func ParseCoarse(raw string) Coarse {
	return Coarse(strings.ToLower(strings.TrimSpace(raw)))
}

// Known reports whether c is one of pending, completed, cancelled or all
func (c Coarse) Known() bool {
	switch c {
	case Pending, Completed, Cancelled, All:
		return true
	}
	return false
}

// IsCancelled reports the cancellation override: a cancelled status or a
// bill of entry number of "cancelled" both cancel the job.
func IsCancelled(rawStatus, rawBeNo string) bool {
	return strings.EqualFold(rawStatus, string(Cancelled)) || strings.EqualFold(rawBeNo, string(Cancelled))
}

// Matches reports whether job belongs to the listing for requested.
//
// The bill_date clauses of pending and completed are implied by the status
// clause before them and never change the outcome. They are kept so the
// in-memory rule reads the same as the store filter built in package query.
func Matches(job *model.ShipmentJob, requested Coarse) bool {
	cancelled := IsCancelled(job.Status, job.BeNo)
	billDateEmpty := strings.TrimSpace(job.BillDate) == ""

	switch requested {
	case All:
		return !cancelled
	case Pending:
		isPending := strings.EqualFold(job.Status, string(Pending))
		return !cancelled && isPending && (billDateEmpty || isPending)
	case Completed:
		isCompleted := strings.EqualFold(job.Status, string(Completed))
		return !cancelled && isCompleted && (!billDateEmpty || isCompleted)
	case Cancelled:
		return cancelled
	default:
		return strings.EqualFold(job.Status, string(requested)) && !cancelled
	}
}

// Classify returns the single coarse bucket a job is listed under
func Classify(job *model.ShipmentJob) Coarse {
	for _, c := range []Coarse{Cancelled, Pending, Completed} {
		if Matches(job, c) {
			return c
		}
	}
	return Other
}
