package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"clearance/internal/controller"
	"clearance/internal/query"
	"clearance/internal/status"

	"github.com/spf13/cobra"
)

type rankOptions struct {
	year        string
	status      string
	detailed    string
	importer    string
	customHouse string
	ieCodes     []string
	importers   []string
	search      string
	exporter    string
	page        int
	limit       int
}

var rankOpts rankOptions

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Print one ranked listing page as JSON",
	Long: `Run a listing request through the ranking engine and print the page.

Setting --custom-house, --ie-codes or --importers switches to the multiple
(custom house) listing; otherwise --importer selects the importer listing.

Examples:
  jobsctl rank --year 24-25 --status pending
  jobsctl rank --year 24-25 --status completed --detailed billing_pending --importer "Acme Polymers"
  jobsctl rank -p gandhidham --year 24-25 --custom-house all --ie-codes 0301,0302`,
	RunE: runRank,
}

func init() {
	f := rankCmd.Flags()
	f.StringVarP(&rankOpts.year, "year", "y", "", "financial year, e.g. 24-25")
	f.StringVarP(&rankOpts.status, "status", "s", string(status.All), "pending, completed, cancelled or all")
	f.StringVarP(&rankOpts.detailed, "detailed", "d", status.DetailedAll, "detailed status key")
	f.StringVar(&rankOpts.importer, "importer", "all", "importer name")
	f.StringVar(&rankOpts.customHouse, "custom-house", "", "custom house (multiple listing)")
	f.StringSliceVar(&rankOpts.ieCodes, "ie-codes", nil, "IE codes (multiple listing)")
	f.StringSliceVar(&rankOpts.importers, "importers", nil, "importer names (multiple listing)")
	f.StringVar(&rankOpts.search, "search", "", "free text search")
	f.StringVar(&rankOpts.exporter, "exporter", "", "supplier/exporter name")
	f.IntVar(&rankOpts.page, "page", 1, "page number")
	f.IntVarP(&rankOpts.limit, "limit", "n", 0, "page size (config default when 0)")
	_ = rankCmd.MarkFlagRequired("year")
}

// jobQuery converts command options into a listing request
func (o rankOptions) jobQuery(partition string) query.JobQuery {
	q := query.JobQuery{
		Partition:      partition,
		Year:           o.year,
		Status:         status.ParseCoarse(o.status),
		DetailedStatus: o.detailed,
		Search:         o.search,
		Exporter:       o.exporter,
		Scope:          query.ScopeImporter,
		Importer:       o.importer,
	}

	if o.customHouse != "" || len(o.ieCodes) > 0 || len(o.importers) > 0 {
		q.Scope = query.ScopeMultiple
		q.Importer = ""
		q.CustomHouse = o.customHouse
		q.IECodes = o.ieCodes
		q.Importers = o.importers
	}

	return q
}

func runRank(cmd *cobra.Command, args []string) error {
	jc, err := jobController()
	if err != nil {
		return err
	}

	page, err := jc.ListRanked(context.Background(), rankOpts.jobQuery(partition),
		controller.Page{Number: rankOpts.page, Limit: rankOpts.limit})
	if err != nil {
		return fmt.Errorf("rank jobs: %w", err)
	}

	return writeJSON(os.Stdout, page)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
