package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"clearance/internal/model"
	"clearance/internal/ranking"
	"clearance/internal/status"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <year> <job-no>",
	Short: "Show which status lists a job lands in",
	Long: `Look up one job and report its coarse status, the listings that
include it and its rank within a listing.

Examples:
  jobsctl classify 24-25 IMP/1042/24-25`,
	Args: cobra.ExactArgs(2),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	jc, err := jobController()
	if err != nil {
		return err
	}

	job, err := jc.GetJob(context.Background(), partition, args[0], args[1])
	if err != nil {
		return fmt.Errorf("get job %s: %w", args[1], err)
	}

	describeJob(os.Stdout, job)
	return nil
}

// describeJob prints the classification report of one job
func describeJob(w io.Writer, job *model.ShipmentJob) {
	fmt.Fprintf(w, "Job:             %s (%s)\n", job.JobNo, job.Year)
	fmt.Fprintf(w, "Status:          %q\n", job.Status)
	fmt.Fprintf(w, "Classified as:   %s\n", status.Classify(job))

	fmt.Fprintln(w, "Listed under:")
	for _, c := range []status.Coarse{status.Pending, status.Completed, status.Cancelled, status.All} {
		mark := " "
		if status.Matches(job, c) {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s\n", mark, c)
	}

	entry, ok := status.Rank(job.DetailedStatus)
	if !ok {
		fmt.Fprintf(w, "Detailed status: %q (unranked, listed last)\n", job.DetailedStatus)
		return
	}

	fmt.Fprintf(w, "Detailed status: %q (rank %d)\n", job.DetailedStatus, entry.Rank)
	if at, ok := ranking.SortDate(job, entry.SortField); ok {
		fmt.Fprintf(w, "Sorted by:       %s = %s\n", entry.SortField, at.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "Sorted by:       %s (missing or invalid, sorted last)\n", entry.SortField)
	}
}
