package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var packsCmd = &cobra.Command{
	Use:   "packs",
	Short: "List the knowledge packs in the local index",
	Args:  cobra.NoArgs,
	RunE:  runPacks,
}

func init() {
	rootCmd.AddCommand(packsCmd)
}

type packOut struct {
	Pack   string `json:"pack"`
	Chunks int    `json:"chunks"`
}

func runPacks(cmd *cobra.Command, _ []string) error {
	idx, err := openIndex()
	if err != nil {
		return err
	}
	if idx == nil {
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), []packOut{})
		}
		printMiss("", fmt.Sprintf("no pack index in %s; run 'kiosk index'", cfg.Retrieval.IndexDir))
		return nil
	}

	out := make([]packOut, 0, len(idx.Manifest.Packs))
	for _, p := range idx.Manifest.Packs {
		out = append(out, packOut{Pack: p, Chunks: idx.PackCount(p)})
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}

	printSection(fmt.Sprintf("Packs (%d)", len(out)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, p := range out {
		fmt.Fprintf(w, "  %s\t%d chunks\n", p.Pack, p.Chunks)
	}
	_ = w.Flush()
	printInfo("", fmt.Sprintf("built %s from %s", idx.Manifest.CreatedAt, idx.Manifest.PackDir))
	return nil
}
