package query

import "go.mongodb.org/mongo-driver/bson"

// ListingProjection limits listing documents to the fields the job tables,
// the ranking and the exports read
var ListingProjection = bson.M{
	"job_no":            1,
	"year":              1,
	"ie_code_no":        1,
	"status":            1,
	"detailed_status":   1,
	"be_no":             1,
	"be_date":           1,
	"bill_date":         1,
	"type_of_b_e":       1,
	"supplier_exporter": 1,
	"consignment_type":  1,
	"importer":          1,
	"custom_house":      1,
	"awb_bl_no":         1,
	"loading_port":      1,
	"port_of_reporting": 1,
	"vessel_berthing":   1,
	"gateway_igm_date":  1,
	"discharge_date":    1,
	"container_nos":     1,
}
