// Package config loads the TOML configuration, writing a default file
// on first launch.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	appDirName            = "taskdeck"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskdeck.db"
	DefaultLogName        = "taskdeck.log"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Delete         string `toml:"delete"`
	Edit           string `toml:"edit"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Search         string `toml:"search"`
	Filter         string `toml:"filter"`
	ShowCompleted  string `toml:"show_completed"`
	SortCreated    string `toml:"sort_created"`
	SortPriority   string `toml:"sort_priority"`
	SortDue        string `toml:"sort_due"`
	MoveUp         string `toml:"move_up"`
	MoveDown       string `toml:"move_down"`
	PriorityCycle  string `toml:"priority_cycle"`
	CategoryCycle  string `toml:"category_cycle"`
	DueForward     string `toml:"due_forward"`
	DueBack        string `toml:"due_back"`
	ClearCompleted string `toml:"clear_completed"`
	Export         string `toml:"export"`
	Import         string `toml:"import"`
	Theme          string `toml:"theme"`
	Help           string `toml:"help"`
	Yank           string `toml:"yank"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogPath       string `toml:"log_path"`
	ExportDir     string `toml:"export_dir"`
	DefaultFilter string `toml:"default_filter"`
	ShowCompleted bool   `toml:"show_completed"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location,
// falling back to the working directory when the user config dir is
// unavailable.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there
// first when no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(filepath.Dir(path), DefaultLogName)
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		LogPath:       filepath.Join(dir, DefaultLogName),
		ExportDir:     ".",
		DefaultFilter: "all",
		ShowCompleted: true,
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Delete:         "d",
			Edit:           "e",
			Confirm:        "enter",
			Cancel:         "esc",
			Search:         "/",
			Filter:         "f",
			ShowCompleted:  "v",
			SortCreated:    "1",
			SortPriority:   "2",
			SortDue:        "3",
			MoveUp:         "K",
			MoveDown:       "J",
			PriorityCycle:  "p",
			CategoryCycle:  "c",
			DueForward:     "]",
			DueBack:        "[",
			ClearCompleted: "X",
			Export:         "E",
			Import:         "I",
			Theme:          "t",
			Help:           "?",
			Yank:           "y",
		},
	}
}
