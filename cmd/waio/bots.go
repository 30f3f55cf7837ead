package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fwojciec/waio"
)

// Run executes the bots command.
func (c *BotsCmd) Run(deps *Dependencies) error {
	bots := waio.Bots()

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bots)
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, b := range bots {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Bot, b.Description(), b.UserAgent)
	}
	return w.Flush()
}
