package host

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"rekindle/ui"
)

// settingsDoc is the on-disk form of the operator settings.
type settingsDoc struct {
	Language string `yaml:"language"`
	Audio    bool   `yaml:"audio"`
}

// LoadSettings reads the persisted operator settings. A missing file is
// a first run, not an error.
func LoadSettings(path string) (ui.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ui.Settings{Audio: true}, nil
		}
		return ui.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var doc settingsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ui.Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	s := ui.Settings{Audio: doc.Audio}
	if doc.Language == "secondary" {
		s.Language = ui.LangSecondary
	}
	return s, nil
}

// SaveSettings writes the operator settings atomically: temp file, fsync,
// rename. A power cut mid-save leaves the previous file intact.
func SaveSettings(path string, s ui.Settings) error {
	doc := settingsDoc{Language: "primary", Audio: s.Audio}
	if s.Language == ui.LangSecondary {
		doc.Language = "secondary"
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer pending.Cleanup()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}
