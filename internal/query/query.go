// Package query turns listing requests into MongoDB filters.
package query

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"clearance/internal/status"

	"go.mongodb.org/mongo-driver/bson"
)

// Scope selects which endpoint-specific filter a listing carries
type Scope string

const (
	// ScopeImporter filters by a single importer name
	ScopeImporter Scope = "importer"
	// ScopeMultiple filters by custom house plus IE code and importer lists
	ScopeMultiple Scope = "multiple"
)

const filterAll = "all"

// JobQuery describes one listing request, without pagination
type JobQuery struct {
	Partition      string        `json:"partition"`
	Year           string        `json:"year"`
	Status         status.Coarse `json:"status"`
	DetailedStatus string        `json:"detailed_status"`
	Search         string        `json:"search"`
	Exporter       string        `json:"exporter"`

	Scope       Scope    `json:"scope"`
	Importer    string   `json:"importer,omitempty"`
	CustomHouse string   `json:"custom_house,omitempty"`
	IECodes     []string `json:"ie_codes,omitempty"`
	Importers   []string `json:"importers,omitempty"`
}

// Build combines year, status, detailed status, scope and search terms
func Build(q JobQuery) bson.M {
	terms := bson.A{bson.M{"year": q.Year}, StatusFilter(q.Status)}

	if f := DetailedFilter(q.DetailedStatus); f != nil {
		terms = append(terms, f)
	}
	for _, f := range ScopeFilters(q) {
		terms = append(terms, f)
	}
	if f := SearchFilter(q.Search); f != nil {
		terms = append(terms, f)
	}

	return bson.M{"$and": terms}
}

// ScopeFilters returns the endpoint-specific terms of q
func ScopeFilters(q JobQuery) []bson.M {
	var terms []bson.M

	switch q.Scope {
	case ScopeMultiple:
		if q.CustomHouse != "" && q.CustomHouse != filterAll {
			terms = append(terms, bson.M{"custom_house": equalFold(q.CustomHouse)})
		}
		if len(q.IECodes) > 0 {
			terms = append(terms, bson.M{"ie_code_no": bson.M{"$in": q.IECodes}})
		}
		if len(q.Importers) > 0 {
			or := make(bson.A, 0, len(q.Importers))
			for _, importer := range q.Importers {
				or = append(or, bson.M{"importer": equalFold(importer)})
			}
			terms = append(terms, bson.M{"$or": or})
		}
	default:
		if q.Importer != "" && !strings.EqualFold(q.Importer, filterAll) {
			terms = append(terms, bson.M{"importer": equalFold(q.Importer)})
		}
	}

	if q.Exporter != "" && q.Exporter != filterAll {
		terms = append(terms, bson.M{"supplier_exporter": equalFold(q.Exporter)})
	}

	return terms
}

// FlatFilter is the filter of the unranked listing: year, status and search
func FlatFilter(year string, requested status.Coarse, search string) bson.M {
	terms := bson.A{bson.M{"year": year}, StatusFilter(requested)}
	if f := SearchFilter(search); f != nil {
		terms = append(terms, f)
	}
	return bson.M{"$and": terms}
}

// SplitList parses a comma separated query parameter, dropping blanks
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Key is a stable identifier of q, used for caching ordered results
func (q JobQuery) Key() string {
	q.Search = strings.TrimSpace(q.Search)
	// JobQuery only holds strings and slices, Marshal cannot fail
	data, _ := json.Marshal(q)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
