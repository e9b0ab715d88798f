// Package bindstore loads a named hotkey table from JSON/YAML, the way a
// host application ships a file of human-editable hotkey assignments
// instead of hardcoding chord expressions in Go. It is sugar layered on
// top of the core engine: the engine itself has no persisted state, but an
// embedding application commonly wants one.
package bindstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"keybinds/internal/hkconfig"
)

// Entry is one named hotkey assignment: the chord/sequence expression plus
// the trigger and suppress policy a host declares for it, analogous to
// buffer-sharer-app's "hotkeys.toggle_input_mode" string entries but
// carrying policy alongside the expression instead of leaving policy to be
// hardcoded at the call site.
type Entry struct {
	Expr           string `json:"expr" mapstructure:"expr"`
	Trigger        string `json:"trigger" mapstructure:"trigger"`
	Suppress       string `json:"suppress" mapstructure:"suppress"`
	HoldMs         int    `json:"hold_ms" mapstructure:"hold_ms"`
	RepeatDelayMs  int    `json:"repeat_delay_ms" mapstructure:"repeat_delay_ms"`
	RepeatInterval int    `json:"repeat_interval_ms" mapstructure:"repeat_interval_ms"`
}

// Table is a named hotkey table: name -> Entry.
type Table struct {
	Hotkeys map[string]Entry `json:"hotkeys" mapstructure:"hotkeys"`
}

// Load reads a hotkey table from configPath if given, or from the first of
// ./configs/hotkeys.json, ./hotkeys.json, ~/.keybinds/hotkeys.json found,
// following buffer-sharer-app's internal/config.Load search order. A
// missing file is not an error — Load returns an empty Table.
func Load(configPath string) (*Table, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("hotkeys")
		v.SetConfigType("json")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".keybinds"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}

	table := &Table{}
	if err := v.Unmarshal(table); err != nil {
		return nil, err
	}
	if table.Hotkeys == nil {
		table.Hotkeys = map[string]Entry{}
	}
	return table, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hotkeys", map[string]Entry{})
}

// Save writes the table to configPath as indented JSON, creating parent
// directories as needed.
func (t *Table) Save(configPath string) error {
	v := viper.New()
	v.Set("hotkeys", t.Hotkeys)
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return v.WriteConfigAs(configPath)
}

// Lookup returns the entry named name, or ok=false if the table has none.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.Hotkeys[name]
	return e, ok
}

// BindConfig builds a hkconfig.BindConfig for entry by soft-merging its
// trigger/suppress/timing overrides onto hkconfig.DefaultBindConfig(),
// returning an error if trigger or suppress names an unknown token.
func (e Entry) BindConfig() (hkconfig.BindConfig, error) {
	patch := hkconfig.BindConfigPatch{}

	if e.Trigger != "" {
		trig, err := parseTrigger(e.Trigger)
		if err != nil {
			return hkconfig.BindConfig{}, err
		}
		patch.Trigger = &trig
	}
	if e.Suppress != "" {
		sup, err := parseSuppress(e.Suppress)
		if err != nil {
			return hkconfig.BindConfig{}, err
		}
		patch.Suppress = &sup
	}
	if e.HoldMs > 0 {
		v := e.HoldMs
		patch.Timing.HoldMs = &v
	}
	if e.RepeatDelayMs > 0 {
		v := e.RepeatDelayMs
		patch.Timing.RepeatDelayMs = &v
	}
	if e.RepeatInterval > 0 {
		v := e.RepeatInterval
		patch.Timing.RepeatIntervalMs = &v
	}

	return hkconfig.SoftMerge(hkconfig.DefaultBindConfig(), patch), nil
}

func parseTrigger(s string) (hkconfig.Trigger, error) {
	switch s {
	case "on_press":
		return hkconfig.OnPress, nil
	case "on_release":
		return hkconfig.OnRelease, nil
	case "on_click":
		return hkconfig.OnClick, nil
	case "on_hold":
		return hkconfig.OnHold, nil
	case "on_repeat":
		return hkconfig.OnRepeat, nil
	case "on_double_tap":
		return hkconfig.OnDoubleTap, nil
	case "on_chord_complete":
		return hkconfig.OnChordComplete, nil
	case "on_chord_released":
		return hkconfig.OnChordReleased, nil
	case "on_sequence":
		return hkconfig.OnSequence, nil
	default:
		return 0, fmt.Errorf("bindstore: unknown trigger %q", s)
	}
}

func parseSuppress(s string) (hkconfig.SuppressPolicy, error) {
	switch s {
	case "never":
		return hkconfig.SuppressNever, nil
	case "always":
		return hkconfig.SuppressAlways, nil
	case "when_matched":
		return hkconfig.SuppressWhenMatched, nil
	case "while_active":
		return hkconfig.SuppressWhileActive, nil
	case "while_evaluating":
		return hkconfig.SuppressWhileEvaluating, nil
	default:
		return 0, fmt.Errorf("bindstore: unknown suppress policy %q", s)
	}
}
