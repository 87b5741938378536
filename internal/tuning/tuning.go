// Package tuning loads the numeric game tuning from yaml.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds everything balance- and host-related that is not catalog data.
type Tuning struct {
	TicksPerSecond  int64  `yaml:"ticks_per_second"`
	CatchUpLimit    int    `yaml:"catchup_limit"`
	FrameMs         int    `yaml:"frame_ms"`
	AutosaveSeconds int    `yaml:"autosave_seconds"`
	DBPath          string `yaml:"db_path"`
	ListenAddr      string `yaml:"listen_addr"`
	AdminKey        string `yaml:"admin_key"`
	Seed            int64  `yaml:"seed"` // 0 = derive a fresh seed at startup
}

// Default returns the stock tuning: 20 ticks/s, a 100-tick catch-up cap,
// 50ms frames.
func Default() Tuning {
	return Tuning{
		TicksPerSecond:  20,
		CatchUpLimit:    100,
		FrameMs:         50,
		AutosaveSeconds: 30,
		DBPath:          "data/oreworks.db",
		ListenAddr:      ":8080",
	}
}

// Load reads tuning from path. A missing file yields the defaults; a
// malformed file is an error. Zero-valued numeric fields fall back to their
// defaults, so a partial file only overrides what it names.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	d := Default()
	if t.TicksPerSecond <= 0 {
		t.TicksPerSecond = d.TicksPerSecond
	}
	if t.CatchUpLimit <= 0 {
		t.CatchUpLimit = d.CatchUpLimit
	}
	if t.FrameMs <= 0 {
		t.FrameMs = d.FrameMs
	}
	if t.AutosaveSeconds <= 0 {
		t.AutosaveSeconds = d.AutosaveSeconds
	}
	if t.DBPath == "" {
		t.DBPath = d.DBPath
	}
	if t.ListenAddr == "" {
		t.ListenAddr = d.ListenAddr
	}
	return t, nil
}
