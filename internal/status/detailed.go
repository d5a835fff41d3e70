package status

import "strings"

// Detailed status labels as stored in detailed_status
const (
	LabelBillingPending           = "Billing Pending"
	LabelETADatePending           = "ETA Date Pending"
	LabelEstimatedTimeOfArrival   = "Estimated Time of Arrival"
	LabelGatewayIGMFiled          = "Gateway IGM Filed"
	LabelDischarged               = "Discharged"
	LabelRailOut                  = "Rail Out"
	LabelBENotedArrivalPending    = "BE Noted, Arrival Pending"
	LabelBENotedClearancePending  = "BE Noted, Clearance Pending"
	LabelPCVDoneDutyPending       = "PCV Done, Duty Payment Pending"
	LabelCustomClearanceCompleted = "Custom Clearance Completed"
)

// DetailedAll disables detailed status filtering
const DetailedAll = "all"

var detailedLabels = map[string]string{
	"billing_pending":               LabelBillingPending,
	"eta_date_pending":              LabelETADatePending,
	"estimated_time_of_arrival":     LabelEstimatedTimeOfArrival,
	"gateway_igm_filed":             LabelGatewayIGMFiled,
	"discharged":                    LabelDischarged,
	"rail_out":                      LabelRailOut,
	"be_noted_arrival_pending":      LabelBENotedArrivalPending,
	"be_noted_clearance_pending":    LabelBENotedClearancePending,
	"pcv_done_duty_payment_pending": LabelPCVDoneDutyPending,
	"custom_clearance_completed":    LabelCustomClearanceCompleted,
}

// ResolveDetailedLabel maps a route key such as billing_pending to its label,
// ignoring case. Keys missing from the dictionary are used verbatim.
func ResolveDetailedLabel(key string) string {
	if label, ok := detailedLabels[strings.ToLower(key)]; ok {
		return label
	}
	return key
}

// DetailedFilterLabel returns the label to filter on, or false when the
// request asks for all detailed statuses.
func DetailedFilterLabel(key string) (string, bool) {
	if key == "" || strings.EqualFold(key, DetailedAll) {
		return "", false
	}
	return ResolveDetailedLabel(key), true
}
