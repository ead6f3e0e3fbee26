package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/ferrylab/tagmind/internal/client"
	"github.com/ferrylab/tagmind/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printReminderTable(rems []client.Reminder) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTAG\tINTERVAL\tLAST SCAN\tPROGRESS\tSTATUS")
	for _, r := range rems {
		last := r.LastScanRelative
		if !r.Status.Scanned {
			last = ui.RenderMuted(last)
		}
		fmt.Fprintf(w, "%s\t%s\t%d %s\t%s\t%d%%\t%s\n",
			r.Key,
			r.Tag,
			r.Interval, r.Unit,
			last,
			r.Status.Percent,
			ui.RenderTier(r.Status.Tier, string(r.Status.Tier)),
		)
	}
	w.Flush()
}

func printReminderDetail(r *client.Reminder) {
	fmt.Printf("Name:       %s\n", r.Name)
	fmt.Printf("Key:        %s\n", r.Key)
	fmt.Printf("Tag:        %s\n", r.Tag)
	fmt.Printf("Interval:   %d %s\n", r.Interval, r.Unit)
	fmt.Printf("Status:     %s (%d%%)\n", ui.RenderTier(r.Status.Tier, string(r.Status.Tier)), r.Status.Percent)
	if r.Status.Scanned {
		fmt.Printf("Last scan:  %s (%s)\n", r.LastScanAbsolute, r.LastScanRelative)
		fmt.Printf("Days since: %.1f\n", r.Status.DaysSince)
	} else {
		fmt.Printf("Last scan:  %s\n", ui.RenderMuted(r.LastScanRelative))
	}
	if r.Actor != "" {
		fmt.Printf("Scanned by: %s\n", r.Actor)
	}
	if r.Count > 0 {
		fmt.Printf("Scan count: %d\n", r.Count)
	}
}
