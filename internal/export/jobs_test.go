package export

import (
	"bytes"
	"testing"

	"clearance/internal/model"
	"clearance/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRow(t *testing.T) {
	job := &model.ShipmentJob{
		JobNo:          "IMP/1042/24-25",
		Importer:       "Acme Polymers",
		Status:         "Pending",
		DetailedStatus: status.LabelBENotedArrivalPending,
		BeNo:           "7712",
		BeDate:         "2024-09-14",
		CustomHouse:    "ICD Sabarmati",
		ContainerNos:   []model.Container{{ContainerNumber: "MSKU1234567"}, {ContainerNumber: "TGHU7654321"}},
	}

	row := Row(job)
	require.Len(t, row, len(Headers))
	assert.Equal(t, []any{
		"IMP/1042/24-25",
		"Acme Polymers",
		"pending",
		status.LabelBENotedArrivalPending,
		"5",
		"2024-09-14",
		"7712",
		"2024-09-14",
		"ICD Sabarmati",
		"MSKU1234567",
	}, row)
}

func TestRowUnrankedAndNoContainers(t *testing.T) {
	row := Row(&model.ShipmentJob{JobNo: "J9", Status: "Completed", BillDate: "2024-10-01", DetailedStatus: "Unknown"})
	assert.Equal(t, "completed", row[2])
	assert.Equal(t, "", row[4])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "", row[9])
}

func TestJobsXLSX(t *testing.T) {
	jobs := []model.ShipmentJob{
		{JobNo: "J1", Status: "Pending", DetailedStatus: status.LabelBillingPending},
		{JobNo: "J2", Status: "Cancelled"},
	}

	data, err := JobsXLSX(jobs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "J1", rows[1][0])
	assert.Equal(t, "1", rows[1][4])
	assert.Equal(t, "J2", rows[2][0])
	assert.Equal(t, "cancelled", rows[2][2])
}

func TestJobsXLSXEmpty(t *testing.T) {
	data, err := JobsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
