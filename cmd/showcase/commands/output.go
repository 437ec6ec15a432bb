package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eeese/showcase/internal/adapter/backend"
	"github.com/eeese/showcase/internal/domain"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

func (c *CLI) checkOutput() error {
	switch c.output {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be %s or %s", c.output, outputTable, outputJSON)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *CLI) printProjects(projects []domain.Project) error {
	if c.output == outputJSON {
		return writeJSON(c.out, backend.ProjectDTOs(projects))
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tHEAD\tPREREQUISITES")
	for _, p := range projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID(), p.Name(), p.Category(), p.Head(), strings.Join(p.Prerequisites(), ", "))
	}
	return tw.Flush()
}

func (c *CLI) printEvents(events []domain.Event) error {
	if c.output == outputJSON {
		return writeJSON(c.out, backend.EventDTOs(events))
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTART\tEND\tLOCATION")
	for _, e := range events {
		location := "-"
		if loc, ok := e.Location(); ok {
			location = loc.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.ID(), e.Name(), formatTime(e.Start()), formatTime(e.End()), location)
	}
	return tw.Flush()
}

func formatTime(t time.Time, ok bool) string {
	if !ok {
		return "-"
	}
	return t.Format(time.RFC3339)
}
