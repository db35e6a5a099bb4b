// Package settings persists user-facing preferences as sibling files in the
// application data directory: a typed settings.json, plus two opaque
// passthrough files (ui_settings.json and typography.yaml) whose content the
// store never interprets.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/annoti/annoti/internal/models"
)

// Version of the settings.json layout.
const Version = "1.0"

type UserSettings struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CanReroll bool   `json:"can_reroll"`
}

type EditorSettings struct {
	DefaultHighlightColor string `json:"default_highlight_color"`
	DefaultHighlightType  string `json:"default_highlight_type"`
	FontSize              int    `json:"font_size"`
	FontFamily            string `json:"font_family"`
}

type ExportSettings struct {
	DefaultFormat      string `json:"default_format"`
	ShowNotesByDefault bool   `json:"show_notes_by_default"`
}

type I18nSettings struct {
	Language string `json:"language"`
}

// Record is the typed settings.json document.
type Record struct {
	Version string         `json:"version"`
	User    UserSettings   `json:"user"`
	Editor  EditorSettings `json:"editor"`
	Export  ExportSettings `json:"export"`
	I18n    I18nSettings   `json:"i18n"`
}

// Defaults returns a fresh settings record with no user bound yet.
func Defaults() Record {
	return Record{
		Version: Version,
		User:    UserSettings{CanReroll: true},
		Editor: EditorSettings{
			DefaultHighlightColor: models.DefaultHighlightColor,
			DefaultHighlightType:  models.DefaultHighlightType,
			FontSize:              16,
			FontFamily:            "system-ui",
		},
		Export: ExportSettings{
			DefaultFormat:      "html",
			ShowNotesByDefault: true,
		},
		I18n: I18nSettings{Language: "en"},
	}
}

// Load reads the settings file at path. A missing file yields Defaults()
// without creating it; callers persist via Save when they mutate the record.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return rec, nil
}

// Save writes the settings record to path as indented JSON.
func Save(path string, rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// LoadUI reads the opaque UI-settings file. The content is validated to be
// JSON but never interpreted; a missing file yields nil.
func LoadUI(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ui settings: %w", err)
	}
	if !json.Valid(data) {
		return nil, errors.New("ui settings file is not valid JSON")
	}
	return json.RawMessage(data), nil
}

// SaveUI writes the opaque UI-settings payload verbatim.
func SaveUI(path string, data json.RawMessage) error {
	if !json.Valid(data) {
		return errors.New("ui settings payload is not valid JSON")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write ui settings: %w", err)
	}
	return nil
}

// LoadTypography reads the typography config as opaque text. A missing file
// yields the empty string.
func LoadTypography(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read typography config: %w", err)
	}
	return string(data), nil
}

// SaveTypography writes the typography config verbatim.
func SaveTypography(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write typography config: %w", err)
	}
	return nil
}
