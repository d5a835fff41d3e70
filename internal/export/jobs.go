// Package export renders ordered job listings as XLSX workbooks.
package export

import (
	"fmt"
	"time"

	"clearance/internal/model"
	"clearance/internal/ranking"
	"clearance/internal/status"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported rows
const SheetName = "Jobs"

// ContentType is the MIME type of the produced workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Headers are the column titles of the export, in order
var Headers = []string{
	"Job No",
	"Importer",
	"Status",
	"Detailed Status",
	"Rank",
	"Sort Date",
	"BE No",
	"BE Date",
	"Custom House",
	"First Container",
}

// Row returns the export cells of one job
func Row(job *model.ShipmentJob) []any {
	rank, sortDate := "", ""
	if entry, ok := status.Rank(job.DetailedStatus); ok {
		rank = fmt.Sprintf("%d", entry.Rank)
		if t, ok := ranking.SortDate(job, entry.SortField); ok {
			sortDate = t.Format("2006-01-02")
		}
	}

	container := ""
	if c, ok := job.FirstContainer(); ok {
		container = c.ContainerNumber
	}

	return []any{
		job.JobNo,
		job.Importer,
		string(status.Classify(job)),
		job.DetailedStatus,
		rank,
		sortDate,
		job.BeNo,
		job.BeDate,
		job.CustomHouse,
		container,
	}
}

// JobsXLSX writes jobs, already ordered, to a single-sheet workbook
func JobsXLSX(jobs []model.ShipmentJob) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	// rename the default sheet rather than adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for i := range jobs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := Row(&jobs[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 22) // job no
	_ = f.SetColWidth(SheetName, "B", "B", 36) // importer
	_ = f.SetColWidth(SheetName, "C", "C", 12)
	_ = f.SetColWidth(SheetName, "D", "D", 32) // detailed status
	_ = f.SetColWidth(SheetName, "E", "H", 14)
	_ = f.SetColWidth(SheetName, "I", "J", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	log.Debug().
		Int("rows", len(jobs)).
		Int64("elapsedMs", time.Since(start).Milliseconds()).
		Msg("Jobs workbook written")

	return buf.Bytes(), nil
}
