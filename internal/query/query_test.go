package query

import (
	"regexp"
	"testing"

	"clearance/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEscapeRegex(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
		match string
		miss  string
	}{
		{"dot and star", "A.B*C", `A\.B\*C`, "xxA.B*Cyy", "AxBBC"},
		{"dash and slash", "JOB-1/24", `JOB\-1\/24`, "JOB-1/24", "JOB-1-24"},
		{"backslash", `a\b`, `a\\b`, `a\b`, "ab"},
		{"groups", "(a|b)", `\(a\|b\)`, "x(a|b)", "a"},
		{"unbalanced", "[{^$", `\[\{\^\$`, "[{^$", "{"},
		{"plain", "MAERSK", "MAERSK", "maersk line", "MSK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EscapeRegex(tt.in)
			assert.Equal(t, tt.want, got)

			re, err := regexp.Compile("(?i)" + got)
			require.NoError(t, err)
			assert.True(t, re.MatchString(tt.match))
			assert.False(t, re.MatchString(tt.miss))
		})
	}
}

func TestSearchFilter(t *testing.T) {
	assert.Nil(t, SearchFilter(""))
	assert.Nil(t, SearchFilter("   \t"))

	f := SearchFilter("  A.B*C ")
	require.NotNil(t, f)

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, len(SearchFields))

	want := primitive.Regex{Pattern: `A\.B\*C`, Options: "i"}
	for i, field := range SearchFields {
		assert.Equal(t, bson.M{field: want}, or[i])
	}
	assert.Contains(t, SearchFields, "container_nos.container_number")
	assert.Contains(t, SearchFields, "container_nos.detention_from")
}

func TestStatusFilter(t *testing.T) {
	cancelledRe := primitive.Regex{Pattern: "^cancelled$", Options: "i"}
	notCancelled := bson.M{"$and": bson.A{
		bson.M{"status": bson.M{"$not": cancelledRe}},
		bson.M{"be_no": bson.M{"$not": cancelledRe}},
	}}

	t.Run("all", func(t *testing.T) {
		assert.Equal(t, notCancelled, StatusFilter(status.All))
	})

	t.Run("cancelled", func(t *testing.T) {
		assert.Equal(t, bson.M{"$or": bson.A{
			bson.M{"status": cancelledRe},
			bson.M{"be_no": cancelledRe},
		}}, StatusFilter(status.Cancelled))
	})

	t.Run("pending keeps bill_date clause", func(t *testing.T) {
		isPending := bson.M{"status": primitive.Regex{Pattern: "^pending$", Options: "i"}}
		assert.Equal(t, bson.M{"$and": bson.A{
			notCancelled,
			isPending,
			bson.M{"$or": bson.A{
				bson.M{"bill_date": bson.M{"$in": bson.A{nil, ""}}},
				isPending,
			}},
		}}, StatusFilter(status.Pending))
	})

	t.Run("completed keeps bill_date clause", func(t *testing.T) {
		f := StatusFilter(status.Completed)
		and := f["$and"].(bson.A)
		require.Len(t, and, 3)
		or := and[2].(bson.M)["$or"].(bson.A)
		assert.Equal(t, bson.M{"bill_date": bson.M{"$nin": bson.A{nil, ""}}}, or[0])
	})

	t.Run("other literal is escaped", func(t *testing.T) {
		assert.Equal(t, bson.M{"$and": bson.A{
			bson.M{"status": primitive.Regex{Pattern: `^on hold\?$`, Options: "i"}},
			notCancelled,
		}}, StatusFilter(status.Coarse("on hold?")))
	})
}

func TestDetailedFilter(t *testing.T) {
	assert.Nil(t, DetailedFilter("all"))
	assert.Nil(t, DetailedFilter(""))
	assert.Equal(t, bson.M{"detailed_status": "BE Noted, Arrival Pending"}, DetailedFilter("be_noted_arrival_pending"))
	assert.Equal(t, bson.M{"detailed_status": "Custom Label"}, DetailedFilter("Custom Label"))
}

func TestScopeFilters(t *testing.T) {
	t.Run("importer all is ignored case-insensitively", func(t *testing.T) {
		assert.Empty(t, ScopeFilters(JobQuery{Scope: ScopeImporter, Importer: "ALL", Exporter: "all"}))
	})

	t.Run("importer and exporter", func(t *testing.T) {
		got := ScopeFilters(JobQuery{Scope: ScopeImporter, Importer: "ACME (India)", Exporter: "Globex"})
		assert.Equal(t, []bson.M{
			{"importer": primitive.Regex{Pattern: `^ACME \(India\)$`, Options: "i"}},
			{"supplier_exporter": primitive.Regex{Pattern: "^Globex$", Options: "i"}},
		}, got)
	})

	t.Run("multiple", func(t *testing.T) {
		got := ScopeFilters(JobQuery{
			Scope:       ScopeMultiple,
			CustomHouse: "ICD SACHANA",
			IECodes:     []string{"0805000001", "0805000002"},
			Importers:   []string{"ACME"},
		})
		assert.Equal(t, []bson.M{
			{"custom_house": primitive.Regex{Pattern: "^ICD SACHANA$", Options: "i"}},
			{"ie_code_no": bson.M{"$in": []string{"0805000001", "0805000002"}}},
			{"$or": bson.A{bson.M{"importer": primitive.Regex{Pattern: "^ACME$", Options: "i"}}}},
		}, got)
	})

	t.Run("multiple with custom house all", func(t *testing.T) {
		assert.Empty(t, ScopeFilters(JobQuery{Scope: ScopeMultiple, CustomHouse: "all"}))
	})
}

func TestBuild(t *testing.T) {
	q := JobQuery{
		Year:           "24-25",
		Status:         status.Pending,
		DetailedStatus: "rail_out",
		Scope:          ScopeImporter,
		Importer:       "ACME",
		Search:         "MSKU",
	}

	f := Build(q)
	and, ok := f["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 5)
	assert.Equal(t, bson.M{"year": "24-25"}, and[0])
	assert.Equal(t, StatusFilter(status.Pending), and[1])
	assert.Equal(t, bson.M{"detailed_status": "Rail Out"}, and[2])
	assert.Equal(t, bson.M{"importer": primitive.Regex{Pattern: "^ACME$", Options: "i"}}, and[3])
	assert.Equal(t, SearchFilter("MSKU"), and[4])

	minimal := Build(JobQuery{Year: "24-25", Status: status.All, DetailedStatus: "all", Importer: "all"})
	assert.Len(t, minimal["$and"], 2)
}

func TestFlatFilter(t *testing.T) {
	assert.Len(t, FlatFilter("24-25", status.All, "")["$and"], 2)
	assert.Len(t, FlatFilter("24-25", status.All, "x")["$and"], 3)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
	assert.Equal(t, []string{"a", "b c"}, SplitList(" a ,, b c ,"))
}

func TestKey(t *testing.T) {
	a := JobQuery{Partition: "default", Year: "24-25", Status: status.All, Search: "x"}
	b := a
	b.Search = " x "
	assert.Equal(t, a.Key(), b.Key())

	c := a
	c.Year = "23-24"
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Len(t, a.Key(), 64)
}
