package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kamusis/kiosk/internal/config"
	"github.com/kamusis/kiosk/internal/engine"
	"github.com/kamusis/kiosk/internal/manifest"
	"github.com/kamusis/kiosk/internal/match"
	"github.com/kamusis/kiosk/internal/prompt"
	"github.com/kamusis/kiosk/internal/retrieval"
	"github.com/kamusis/kiosk/internal/retrieval/packindex"
)

func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.LoadOrDefault()
}

// newLogger builds the stderr console logger used by every command.
func newLogger(level string, debug bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}

func area() string {
	if flagArea != "" {
		return flagArea
	}
	return cfg.AreaCode
}

func matchMode() match.Mode {
	// Validated when the config was loaded.
	m, _ := match.ParseMode(cfg.MatchMode)
	return m
}

func loadOptions() manifest.LoadOptions {
	opts := manifest.DefaultLoadOptions()
	opts.SkipMalformed = cfg.Manifests.SkipMalformed
	opts.Logger = logger
	return opts
}

func loadManifests() (*manifest.Set, error) {
	set, err := manifest.Load(cfg.ManifestDir, loadOptions())
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		printWarn("", fmt.Sprintf("no manifests in %s; every query routes to the empty domain", cfg.ManifestDir))
	}
	return set, nil
}

// openIndex loads the pack index. A missing index is not an error: queries
// then run without references.
func openIndex() (*packindex.Index, error) {
	idx, err := packindex.Load(cfg.Retrieval.IndexDir)
	if err != nil {
		if errors.Is(err, packindex.ErrIndexMissing) {
			logger.Debug("no pack index, running without references", zap.String("dir", cfg.Retrieval.IndexDir))
			return nil, nil
		}
		return nil, fmt.Errorf("cannot load pack index: %w\nRun 'kiosk index' to rebuild it.", err)
	}
	return idx, nil
}

func newEngine(src engine.Manifests) (*engine.Engine, error) {
	idx, err := openIndex()
	if err != nil {
		return nil, err
	}
	var searcher retrieval.Searcher = retrieval.NoopSearcher{}
	if idx != nil {
		searcher = idx
	}
	join, _ := prompt.ParseJoin(cfg.Prompt.Join)
	return engine.New(src,
		engine.WithSearcher(searcher),
		engine.WithMatchMode(matchMode()),
		engine.WithAssembler(prompt.Assembler{Join: join, MaxReferences: cfg.Prompt.MaxReferences}),
		engine.WithGate(retrieval.GateOptions{MinScore: cfg.Gate.MinScore, MinCoverage: cfg.Gate.MinCoverage}),
		engine.WithTopK(cfg.Retrieval.TopK),
		engine.WithLogger(logger),
	), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func matchModeMatcher() match.Matcher {
	return match.Matcher{Mode: matchMode()}
}
