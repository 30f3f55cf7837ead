package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/waio"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := waio.ReportFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Bot != "" {
		bot, err := waio.ParseBot(c.Bot)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
			return err
		}
		filter.Bot = &bot.Bot
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", waio.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if reports == nil {
			reports = []*waio.Report{}
		}
		return writeJSON(deps.Stdout, reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'waio extract --save' or 'waio bench --save' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tBOT\tMODE\tSPEEDUP\tINTEGRITY\tURL")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fx\t%.1f%%\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Bot, r.Mode, r.Speedup, r.IntegrityScore, r.URL)
	}
	return w.Flush()
}
