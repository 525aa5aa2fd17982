package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/engine"
)

var flagBatchWorkers int

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Dry-run every query in a file (one per line, '-' for stdin)",
	Long: `Dry-run every query in a file and report the decisions in input order.

Blank lines and lines starting with '#' are ignored. With --json each report
is printed as one JSON object per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&flagBatchWorkers, "workers", engine.DefaultBatchWorkers, "Queries evaluated concurrently")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()
		r = f
	}
	queries, err := readQueries(r)
	if err != nil {
		return err
	}

	set, err := loadManifests()
	if err != nil {
		return err
	}
	eng, err := newEngine(engine.Static(set))
	if err != nil {
		return err
	}
	reports, err := eng.EvaluateBatch(cmd.Context(), queries, area(), flagBatchWorkers)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, rep := range reports {
			if err := enc.Encode(rep); err != nil {
				return err
			}
		}
		return nil
	}

	printSection(fmt.Sprintf("Batch (%d queries)", len(reports)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tDOMAIN\tTASK\tATTACH\tCHUNKS\tFLAGS\tQUERY")
	for i, rep := range reports {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%d\t%s\t%s\n",
			i+1, emptyAsNA(rep.Domain), rep.Task, yesNo(rep.Attach), len(rep.Chunks), listOrNone(rep.Flags), rep.Query)
	}
	return w.Flush()
}

// readQueries returns the trimmed non-blank, non-comment lines of r.
func readQueries(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read queries: %w", err)
	}
	return out, nil
}
