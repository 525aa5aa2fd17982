package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/engine"
	"github.com/kamusis/kiosk/internal/llm"
	"github.com/kamusis/kiosk/internal/manifest"
)

var (
	flagReplWatch bool
	flagReplAsk   bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Read queries from stdin and show each decision",
	Long: `Read queries line by line and dry-run each one (or run the answer flow
with --ask). Type :q to quit.

With --watch the manifest directory is watched and reloaded on change, so
manifests can be edited while the loop runs.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().BoolVar(&flagReplWatch, "watch", false, "Reload manifests when the manifest directory changes")
	replCmd.Flags().BoolVar(&flagReplAsk, "ask", false, "Run the answer flow instead of a dry run")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	src, done, err := replManifests(ctx)
	if err != nil {
		return err
	}
	defer done()

	eng, err := newEngine(src)
	if err != nil {
		return err
	}
	printInfo("", fmt.Sprintf("%d manifest(s) loaded, area %s; :q to quit", eng.Set().Len(), area()))

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Print("kiosk> ")
		if !in.Scan() {
			fmt.Println()
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		switch line {
		case "":
			continue
		case ":q", ":quit", "exit":
			return nil
		}
		if err := replOne(ctx, eng, line); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			printErr("", err.Error())
		}
	}
}

func replOne(ctx context.Context, eng *engine.Engine, query string) error {
	if !flagReplAsk {
		r, err := eng.DryRun(ctx, query, area())
		if err != nil {
			return err
		}
		printReport(r, flagDebug)
		return nil
	}
	resp, err := eng.Answer(ctx, query, area())
	if errors.Is(err, llm.ErrNotWired) {
		printWarn("", "no model is wired; prompt follows")
		fmt.Println(resp.Prompt)
		return nil
	}
	if err != nil {
		return err
	}
	if !resp.Safety.OK {
		printWarn("safety", resp.Safety.Message)
	}
	fmt.Println(resp.Reply)
	return nil
}

// replManifests loads the manifest set, watching it when --watch is set. The
// returned func stops the watcher and waits for it.
func replManifests(ctx context.Context) (engine.Manifests, func(), error) {
	if !flagReplWatch {
		set, err := loadManifests()
		if err != nil {
			return nil, nil, err
		}
		return engine.Static(set), func() {}, nil
	}

	w, err := manifest.NewWatcher(cfg.ManifestDir, loadOptions())
	if err != nil {
		return nil, nil, err
	}
	w.OnReload = func(set *manifest.Set, err error) {
		if err != nil {
			printWarn("manifests", fmt.Sprintf("reload failed, keeping previous set: %v", err))
			return
		}
		printInfo("manifests", fmt.Sprintf("reloaded %d manifest(s)", set.Len()))
	}

	wctx, cancel := context.WithCancel(ctx)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_ = w.Run(wctx)
	}()
	return w, func() {
		cancel()
		<-finished
		_ = w.Close()
	}, nil
}
