package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Container is one entry of a job's container_nos list
type Container struct {
	ContainerNumber           string `bson:"container_number,omitempty" json:"container_number,omitempty"`
	Size                      string `bson:"size,omitempty" json:"size,omitempty"`
	ArrivalDate               string `bson:"arrival_date,omitempty" json:"arrival_date,omitempty"`
	DetentionFrom             string `bson:"detention_from,omitempty" json:"detention_from,omitempty"`
	RailOut                   string `bson:"rail_out,omitempty" json:"rail_out,omitempty"`
	EmptyContainerOffLoadDate string `bson:"emptyContainerOffLoadDate,omitempty" json:"emptyContainerOffLoadDate,omitempty"`
}

// ShipmentJob is a customs clearance job as stored by the ingestion side.
// Date-like fields are kept as the raw strings the portal writes.
type ShipmentJob struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	JobNo    string             `bson:"job_no" json:"job_no"`
	Year     string             `bson:"year" json:"year"`
	IECodeNo string             `bson:"ie_code_no,omitempty" json:"ie_code_no,omitempty"`

	Status         string `bson:"status,omitempty" json:"status,omitempty"`
	DetailedStatus string `bson:"detailed_status,omitempty" json:"detailed_status,omitempty"`
	BeNo           string `bson:"be_no,omitempty" json:"be_no,omitempty"`
	BeDate         string `bson:"be_date,omitempty" json:"be_date,omitempty"`
	BillDate       string `bson:"bill_date,omitempty" json:"bill_date,omitempty"`

	TypeOfBE         string `bson:"type_of_b_e,omitempty" json:"type_of_b_e,omitempty"`
	SupplierExporter string `bson:"supplier_exporter,omitempty" json:"supplier_exporter,omitempty"`
	ConsignmentType  string `bson:"consignment_type,omitempty" json:"consignment_type,omitempty"`
	Importer         string `bson:"importer,omitempty" json:"importer,omitempty"`
	CustomHouse      string `bson:"custom_house,omitempty" json:"custom_house,omitempty"`
	AwbBlNo          string `bson:"awb_bl_no,omitempty" json:"awb_bl_no,omitempty"`
	LoadingPort      string `bson:"loading_port,omitempty" json:"loading_port,omitempty"`
	PortOfReporting  string `bson:"port_of_reporting,omitempty" json:"port_of_reporting,omitempty"`

	VesselBerthing string `bson:"vessel_berthing,omitempty" json:"vessel_berthing,omitempty"`
	GatewayIGMDate string `bson:"gateway_igm_date,omitempty" json:"gateway_igm_date,omitempty"`
	DischargeDate  string `bson:"discharge_date,omitempty" json:"discharge_date,omitempty"`

	ContainerNos []Container `bson:"container_nos,omitempty" json:"container_nos"`
}

var jobFields = map[string]func(*ShipmentJob) string{
	"job_no":            func(j *ShipmentJob) string { return j.JobNo },
	"be_no":             func(j *ShipmentJob) string { return j.BeNo },
	"be_date":           func(j *ShipmentJob) string { return j.BeDate },
	"bill_date":         func(j *ShipmentJob) string { return j.BillDate },
	"importer":          func(j *ShipmentJob) string { return j.Importer },
	"custom_house":      func(j *ShipmentJob) string { return j.CustomHouse },
	"vessel_berthing":   func(j *ShipmentJob) string { return j.VesselBerthing },
	"gateway_igm_date":  func(j *ShipmentJob) string { return j.GatewayIGMDate },
	"discharge_date":    func(j *ShipmentJob) string { return j.DischargeDate },
	"supplier_exporter": func(j *ShipmentJob) string { return j.SupplierExporter },
}

var containerFields = map[string]func(*Container) string{
	"container_number":          func(c *Container) string { return c.ContainerNumber },
	"arrival_date":              func(c *Container) string { return c.ArrivalDate },
	"detention_from":            func(c *Container) string { return c.DetentionFrom },
	"rail_out":                  func(c *Container) string { return c.RailOut },
	"emptyContainerOffLoadDate": func(c *Container) string { return c.EmptyContainerOffLoadDate },
}

// FirstContainer returns container_nos[0] when the job has any containers
func (j *ShipmentJob) FirstContainer() (*Container, bool) {
	if len(j.ContainerNos) == 0 {
		return nil, false
	}
	return &j.ContainerNos[0], true
}

// FieldValue reads a named field from the job itself, falling back to the
// first container. The bool is false when neither carries a value.
func (j *ShipmentJob) FieldValue(name string) (string, bool) {
	if get, ok := jobFields[name]; ok {
		if v := get(j); v != "" {
			return v, true
		}
	}

	c, ok := j.FirstContainer()
	if !ok {
		return "", false
	}
	if get, ok := containerFields[name]; ok {
		if v := get(c); v != "" {
			return v, true
		}
	}
	return "", false
}
