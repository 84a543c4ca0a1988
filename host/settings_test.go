package host

import (
	"path/filepath"
	"testing"

	"rekindle/ui"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := ui.Settings{Language: ui.LangSecondary, Audio: false}
	if err := SaveSettings(path, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings on missing file: %v", err)
	}
	// First run: primary bank, audio on.
	if got.Language != ui.LangPrimary || !got.Audio {
		t.Errorf("first-run settings = %+v", got)
	}
}
