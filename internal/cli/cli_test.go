package cli

import (
	"bytes"
	"testing"

	"clearance/internal/config"
	"clearance/internal/model"
	"clearance/internal/query"
	"clearance/internal/status"

	"github.com/stretchr/testify/assert"
)

func TestRankOptionsImporterQuery(t *testing.T) {
	o := rankOptions{year: "24-25", status: "Pending", detailed: "all", importer: "Acme", search: "MSKU"}

	assert.Equal(t, query.JobQuery{
		Partition:      config.DefaultPartition,
		Year:           "24-25",
		Status:         status.Pending,
		DetailedStatus: "all",
		Search:         "MSKU",
		Scope:          query.ScopeImporter,
		Importer:       "Acme",
	}, o.jobQuery(config.DefaultPartition))
}

func TestRankOptionsMultipleQuery(t *testing.T) {
	o := rankOptions{year: "24-25", status: "all", importer: "all", ieCodes: []string{"0301"}}

	q := o.jobQuery(config.GandhidhamPartition)
	assert.Equal(t, query.ScopeMultiple, q.Scope)
	assert.Equal(t, config.GandhidhamPartition, q.Partition)
	assert.Empty(t, q.Importer)
	assert.Equal(t, []string{"0301"}, q.IECodes)
}

func TestDescribeJob(t *testing.T) {
	t.Run("ranked pending job", func(t *testing.T) {
		var buf bytes.Buffer
		describeJob(&buf, &model.ShipmentJob{
			JobNo:          "IMP/1042/24-25",
			Year:           "24-25",
			Status:         "Pending",
			DetailedStatus: status.LabelRailOut,
			ContainerNos:   []model.Container{{RailOut: "2024-08-02"}},
		})

		out := buf.String()
		assert.Contains(t, out, "Classified as:   pending")
		assert.Contains(t, out, "[x] pending")
		assert.Contains(t, out, "[ ] completed")
		assert.Contains(t, out, "[x] all")
		assert.Contains(t, out, "(rank 6)")
		assert.Contains(t, out, "rail_out = 2024-08-02")
	})

	t.Run("cancelled by bill of entry number", func(t *testing.T) {
		var buf bytes.Buffer
		describeJob(&buf, &model.ShipmentJob{JobNo: "J2", Status: "Pending", BeNo: "CANCELLED"})

		out := buf.String()
		assert.Contains(t, out, "Classified as:   cancelled")
		assert.Contains(t, out, "[ ] pending")
		assert.Contains(t, out, "[x] cancelled")
		assert.Contains(t, out, "[ ] all")
		assert.Contains(t, out, "unranked, listed last")
	})
}
