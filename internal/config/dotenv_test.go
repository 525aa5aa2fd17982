package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withKioskDir points HOME at a temp dir and returns its ~/.kiosk.
func withKioskDir(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".kiosk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func writeDotEnv(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDotEnv_NotExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	dir := withKioskDir(t)
	writeDotEnv(t, dir, "# comment\nA=1\nB=two\nKIOSK_AREA_CODE=\"WARD 5\"\nexport KIOSK_LOG_LEVEL=debug\n")

	m, err := LoadDotEnv()
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if m["A"] != "1" || m["B"] != "two" {
		t.Fatalf("unexpected map: %v", m)
	}
	if m["KIOSK_AREA_CODE"] != "WARD 5" || m["KIOSK_LOG_LEVEL"] != "debug" {
		t.Fatalf("quoted or exported values not parsed: %v", m)
	}
}

func TestGetConfigValue_EnvOverridesDotEnv(t *testing.T) {
	dir := withKioskDir(t)
	writeDotEnv(t, dir, "K=fromdotenv\nL=onlydotenv\n")
	t.Setenv("K", "fromenv")

	v, err := GetConfigValue("K")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "fromenv" {
		t.Fatalf("expected env override, got %q", v)
	}
	v, err = GetConfigValue("L")
	if err != nil {
		t.Fatalf("GetConfigValue: %v", err)
	}
	if v != "onlydotenv" {
		t.Fatalf("expected dotenv fallback, got %q", v)
	}
}

func TestEnsureDotEnvTemplate(t *testing.T) {
	dir := withKioskDir(t)
	p := filepath.Join(dir, ".env")

	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	m, err := LoadDotEnv()
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{EnvManifestDir, EnvAreaCode, EnvLogLevel} {
		if _, ok := m[k]; !ok {
			t.Fatalf("template is missing %s: %v", k, m)
		}
	}

	writeDotEnv(t, dir, "KIOSK_AREA_CODE=keep\n")
	if err := EnsureDotEnvTemplate(); err != nil {
		t.Fatalf("EnsureDotEnvTemplate: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "KIOSK_AREA_CODE=keep\n" {
		t.Fatalf("template overwrote existing file: %q", string(b))
	}
}
