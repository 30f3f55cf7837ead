package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/waio"
	"github.com/fwojciec/waio/extract"
)

// contentPreviewRunes bounds main content in text output.
const contentPreviewRunes = 500

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeComparison(w io.Writer, c *waio.Comparison, bot waio.BotConfig) {
	m := c.Structured.Metrics
	fmt.Fprintf(w, "URL:   %s\n", c.URL)
	fmt.Fprintf(w, "Bot:   %s (%s)\n", c.Bot, bot.Description())
	fmt.Fprintf(w, "Mode:  %s\n", c.Mode.Label())
	fmt.Fprintf(w, "Fetch: status %d, %d bytes, network %s, parse %s\n",
		m.StatusCode, m.ResponseSize, formatDuration(m.NetworkTime), formatDuration(m.ParseTime))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Heuristic")
	writeRun(w, c.Heuristic)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Structured")
	writeRun(w, c.Structured)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Speedup: %.2fx  Gain: %.2f%%\n", c.Speedup(), c.GainPercent())
}

func writeRun(w io.Writer, run waio.Run) {
	fmt.Fprintf(w, "  Cognitive time: %s\n", formatDuration(run.Metrics.CognitiveTime))
	if run.Tokens > 0 {
		fmt.Fprintf(w, "  Tokens: %d\n", run.Tokens)
	}
	r := run.Result
	if r == nil {
		return
	}
	fmt.Fprintf(w, "  Markers detected: %s\n", yesNo(r.MarkersDetected))
	fmt.Fprintf(w, "  Integrity: %.1f%%\n", r.IntegrityScore())
	for _, f := range waio.CoreFields {
		value := r.Get(f)
		if value == "" {
			fmt.Fprintf(w, "  %s: -\n", f.Label())
			continue
		}
		if f == waio.FieldMainContent {
			value = preview(value)
		}
		fmt.Fprintf(w, "  %s [%s]: %s\n", f.Label(), r.Provenance[f], value)
	}
	if len(r.Reasoning) > 0 {
		fmt.Fprintln(w, "  Reasoning:")
		keys := make([]string, 0, len(r.Reasoning))
		for k := range r.Reasoning {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    %s: %s\n", k, r.Reasoning[k])
		}
	}
}

// preview flattens whitespace and truncates content for display.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	t := extract.Truncate(s, contentPreviewRunes)
	if t != s {
		t += "..."
	}
	return t
}

func formatDuration(d time.Duration) string {
	return d.Round(10 * time.Microsecond).String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
