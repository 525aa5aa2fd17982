package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/retrieval/packindex"
)

var (
	flagIndexTimeout     time.Duration
	flagIndexLockTimeout time.Duration
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the local knowledge-pack index",
	Long: `Rebuild the pack index from retrieval.pack_dir into retrieval.index_dir.

Packs are laid out as <pack_dir>/<name>/<area>/... and indexed as
"name::area". The new index is built aside and swapped in atomically under an
exclusive lock.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().DurationVar(&flagIndexTimeout, "timeout", 10*time.Minute, "Give up building after this long")
	indexCmd.Flags().DurationVar(&flagIndexLockTimeout, "lock-timeout", 30*time.Second, "How long to wait for a concurrent build")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), flagIndexTimeout)
	defer cancel()

	printInfo("", fmt.Sprintf("indexing packs in %s", cfg.Retrieval.PackDir))
	idx, err := packindex.BuildAndSwap(ctx, packindex.BuildOptions{
		PackDir: cfg.Retrieval.PackDir,
		OutDir:  cfg.Retrieval.IndexDir,
		Logger:  logger,
	}, flagIndexLockTimeout)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), idx.Manifest)
	}
	printOK("", fmt.Sprintf("pack index written: %s (%d packs, %d chunks)", cfg.Retrieval.IndexDir, len(idx.Manifest.Packs), idx.Len()))
	return nil
}
