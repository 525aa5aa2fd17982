package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamusis/kiosk/internal/config"
)

// sampleManifest is written into an empty manifest directory on first init.
const sampleManifest = `id: utility_outages
intents:
  patterns: [power outage, outage, blackout, electricity]
embedding_seeds:
  - the power is out in my area
  - when will electricity be restored
task_patterns:
  report_outage: [report, no power, lights out]
  outage_status: [when, status, restored, eta]
tasks: [report_outage, outage_status]
requires_sources: [outage_status]
packs_by_task:
  report_outage: ["utility_contacts::<AREA>"]
  outage_status: ["outage_map::<AREA>", "utility_notices::<AREA>"]
safety_rules:
  hazard: [smell gas, gas smell, downed line, sparking]
thresholds:
  probe_score_min: 0.33
prompt_template: You help residents of <AREA> with power outages. Be brief and practical.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create ~/.kiosk with a default config and a sample manifest",
	Long: `Initialize kiosk at ~/.kiosk/.

Writes kiosk.yaml and a .env template when missing, creates the manifest and
pack directories, and drops a sample manifest into an empty manifest directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	// ── 1. Resolve ~/.kiosk directory ─────────────────────────────────────────
	kioskDir, err := config.KioskDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	// ── 2. Create ~/.kiosk/ if it doesn't exist ───────────────────────────────
	if err := os.MkdirAll(kioskDir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", kioskDir, err)
	}
	printOK("", fmt.Sprintf("Kiosk directory ready: %s", kioskDir))

	// ── 3. Write kiosk.yaml and .env if missing ───────────────────────────────
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		c, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if err := config.Save(c); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("Config written: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("Config already exists: %s", cfgPath))
	}
	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}

	// ── 4. Load final config ──────────────────────────────────────────────────
	c, err := config.Load()
	if err != nil {
		return err
	}

	// ── 5. Manifest and pack directories ──────────────────────────────────────
	for _, dir := range []string{c.ManifestDir, c.Retrieval.PackDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	entries, err := os.ReadDir(c.ManifestDir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", c.ManifestDir, err)
	}
	if len(entries) == 0 {
		p := filepath.Join(c.ManifestDir, "utility_outages.yaml")
		if err := os.WriteFile(p, []byte(sampleManifest), 0o644); err != nil {
			return fmt.Errorf("cannot write sample manifest: %w", err)
		}
		printOK("", fmt.Sprintf("Sample manifest written: %s", p))
	} else {
		printSkip("", fmt.Sprintf("Manifest directory not empty: %s", c.ManifestDir))
	}

	fmt.Println()
	printInfo("", fmt.Sprintf("Put knowledge packs under %s/<pack>/<area>/ and run 'kiosk index'.", c.Retrieval.PackDir))
	return nil
}
