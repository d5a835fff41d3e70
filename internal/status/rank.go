package status

// RankEntry ties a detailed status label to its display rank and the field
// its jobs are sorted by
type RankEntry struct {
	Label     string
	Rank      int
	SortField string
}

// RankTable lists ranked labels in ascending rank
var RankTable = []RankEntry{
	{Label: LabelBillingPending, Rank: 1, SortField: "emptyContainerOffLoadDate"},
	{Label: LabelCustomClearanceCompleted, Rank: 2, SortField: "detention_from"},
	{Label: LabelPCVDoneDutyPending, Rank: 3, SortField: "detention_from"},
	{Label: LabelBENotedClearancePending, Rank: 4, SortField: "detention_from"},
	{Label: LabelBENotedArrivalPending, Rank: 5, SortField: "be_date"},
	{Label: LabelRailOut, Rank: 6, SortField: "rail_out"},
	{Label: LabelDischarged, Rank: 7, SortField: "discharge_date"},
	{Label: LabelGatewayIGMFiled, Rank: 8, SortField: "gateway_igm_date"},
	{Label: LabelEstimatedTimeOfArrival, Rank: 9, SortField: "vessel_berthing"},
}

var rankByLabel = func() map[string]RankEntry {
	m := make(map[string]RankEntry, len(RankTable))
	for _, e := range RankTable {
		m[e.Label] = e
	}
	return m
}()

// Rank looks up a detailed status label. Labels are matched exactly.
func Rank(label string) (RankEntry, bool) {
	e, ok := rankByLabel[label]
	return e, ok
}
