package query

import (
	"clearance/internal/status"

	"go.mongodb.org/mongo-driver/bson"
)

func cancelledFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"status": equalFold(string(status.Cancelled))},
		bson.M{"be_no": equalFold(string(status.Cancelled))},
	}}
}

func notCancelledFilter() bson.M {
	return bson.M{"$and": bson.A{
		bson.M{"status": bson.M{"$not": equalFold(string(status.Cancelled))}},
		bson.M{"be_no": bson.M{"$not": equalFold(string(status.Cancelled))}},
	}}
}

// StatusFilter is the store-side form of status.Matches, including its
// redundant bill_date clauses.
func StatusFilter(requested status.Coarse) bson.M {
	switch requested {
	case status.All:
		return notCancelledFilter()
	case status.Pending:
		isPending := bson.M{"status": equalFold(string(status.Pending))}
		return bson.M{"$and": bson.A{
			notCancelledFilter(),
			isPending,
			bson.M{"$or": bson.A{
				bson.M{"bill_date": bson.M{"$in": bson.A{nil, ""}}},
				isPending,
			}},
		}}
	case status.Completed:
		isCompleted := bson.M{"status": equalFold(string(status.Completed))}
		return bson.M{"$and": bson.A{
			notCancelledFilter(),
			isCompleted,
			bson.M{"$or": bson.A{
				bson.M{"bill_date": bson.M{"$nin": bson.A{nil, ""}}},
				isCompleted,
			}},
		}}
	case status.Cancelled:
		return cancelledFilter()
	default:
		return bson.M{"$and": bson.A{
			bson.M{"status": equalFold(string(requested))},
			notCancelledFilter(),
		}}
	}
}

// DetailedFilter filters on a detailed status route key; "all" yields nil
func DetailedFilter(key string) bson.M {
	label, ok := status.DetailedFilterLabel(key)
	if !ok {
		return nil
	}
	return bson.M{"detailed_status": label}
}
