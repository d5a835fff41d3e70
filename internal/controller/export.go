package controller

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"clearance/internal/aws"
	"clearance/internal/export"
	"clearance/internal/query"

	"github.com/rs/zerolog/log"
)

// ExportResult is either an uploaded workbook (URL set) or the workbook
// itself for streaming back to the caller
type ExportResult struct {
	URL      string
	FileName string
	Workbook []byte
}

type ExportController interface {
	ExportJobs(ctx context.Context, q query.JobQuery) (*ExportResult, error)
}

type exportController struct {
	jc          JobController
	fileService aws.FileService
	now         func() time.Time
}

// NewExportController creates an export controller. Without a file service
// workbooks are returned inline.
func NewExportController(jc JobController, fileService aws.FileService) ExportController {
	return &exportController{jc: jc, fileService: fileService, now: time.Now}
}

func (c *exportController) ExportJobs(ctx context.Context, q query.JobQuery) (*ExportResult, error) {
	jobs, err := c.jc.OrderedJobs(ctx, q)
	if err != nil {
		return nil, err
	}

	workbook, err := export.JobsXLSX(jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	stamp := c.now().UTC().Format("20060102T150405")
	result := &ExportResult{
		FileName: fmt.Sprintf("jobs-%s-%s-%s.xlsx", q.Year, q.Status, stamp),
	}

	if c.fileService == nil {
		result.Workbook = workbook
		return result, nil
	}

	key := aws.ExportKey(q.Partition, q.Year, string(q.Status), stamp)
	url, err := c.fileService.UploadFile(ctx, key, bytes.NewReader(workbook), export.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	log.Info().
		Str("partition", q.Partition).
		Str("year", q.Year).
		Int("rows", len(jobs)).
		Str("key", key).
		Msg("Exported jobs")

	result.URL = url
	return result, nil
}
