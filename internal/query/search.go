package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchFields are matched by free-text search. Dotted container_nos paths
// match when any container carries the text.
var SearchFields = []string{
	"job_no",
	"type_of_b_e",
	"supplier_exporter",
	"consignment_type",
	"importer",
	"custom_house",
	"awb_bl_no",
	"vessel_berthing",
	"gateway_igm_date",
	"discharge_date",
	"be_no",
	"be_date",
	"loading_port",
	"port_of_reporting",
	"container_nos.container_number",
	"container_nos.arrival_date",
	"container_nos.detention_from",
}

var regexEscaper = strings.NewReplacer(
	`\`, `\\`,
	`-`, `\-`,
	`/`, `\/`,
	`^`, `\^`,
	`$`, `\$`,
	`*`, `\*`,
	`+`, `\+`,
	`?`, `\?`,
	`.`, `\.`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`[`, `\[`,
	`]`, `\]`,
	`{`, `\{`,
	`}`, `\}`,
)

// EscapeRegex escapes regex metacharacters so user input is matched literally
func EscapeRegex(s string) string {
	return regexEscaper.Replace(s)
}

func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: EscapeRegex(s), Options: "i"}
}

func equalFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + EscapeRegex(s) + "$", Options: "i"}
}

// SearchFilter matches jobs where any search field contains search,
// ignoring case. Blank input returns nil.
func SearchFilter(search string) bson.M {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil
	}

	pattern := containsFold(search)
	or := make(bson.A, 0, len(SearchFields))
	for _, field := range SearchFields {
		or = append(or, bson.M{field: pattern})
	}

	return bson.M{"$or": or}
}
