// Package config reads and writes the local JSON settings file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/varepato/pantrypal/internal/expiry"
	"github.com/varepato/pantrypal/internal/reminder"
	"github.com/varepato/pantrypal/internal/widget"
)

const configFile = ".pantry/config.json"

// Settings is the persisted local configuration.
type Settings struct {
	SoonWindowDays   int    `json:"soon_window_days,omitempty"`
	ReminderLeadDays int    `json:"reminder_lead_days,omitempty"`
	ReminderHour     int    `json:"reminder_hour,omitempty"`
	WidgetPath       string `json:"widget_path,omitempty"`
}

// Load reads settings from disk, filling defaults for unset fields.
// A missing file yields pure defaults.
func Load(baseDir string) (Settings, error) {
	s := Settings{}
	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(s, baseDir), nil
		}
		return withDefaults(s, baseDir), err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return withDefaults(Settings{}, baseDir), err
	}
	return withDefaults(s, baseDir), nil
}

// Save writes settings to disk using an atomic write (temp file + rename).
func Save(baseDir string, s Settings) error {
	configPath := filepath.Join(baseDir, configFile)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

func withDefaults(s Settings, baseDir string) Settings {
	if s.SoonWindowDays <= 0 {
		s.SoonWindowDays = expiry.DefaultSoonWindowDays
	}
	if s.ReminderLeadDays <= 0 {
		s.ReminderLeadDays = reminder.DefaultLeadDays
	}
	if s.ReminderHour <= 0 || s.ReminderHour > 23 {
		s.ReminderHour = reminder.DefaultFireHour
	}
	if s.WidgetPath == "" {
		s.WidgetPath = filepath.Join(baseDir, widget.DefaultFile)
	}
	return s
}

// Policy returns the reminder policy configured here.
func (s Settings) Policy() reminder.Policy {
	return reminder.Policy{LeadDays: s.ReminderLeadDays, FireHour: s.ReminderHour}
}
