// Package config provides user configuration management for calcpad.
//
// This package manages a YAML configuration file holding calculator
// preferences (the repeated "=" policy), the terminal UI start screen,
// greeting animation parameters and remote keypad server settings. The file
// follows OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/calcpad/config.yaml or $HOME/.config/calcpad/config.yaml
//   - macOS: $HOME/.config/calcpad/config.yaml
//   - Windows: %LOCALAPPDATA%\calcpad\config.yaml
//
// # Usage Example
//
//	cfg, err := config.LoadDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.Preferences.RepeatEquals = "repeat"
//	path, _ := config.GetConfigPath()
//	if err := cfg.Save(path); err != nil {
//	    log.Fatal(err)
//	}
//
// # Live Reload
//
// Watch follows the file with fsnotify and hands every valid new version to
// a callback; the terminal UI uses it to apply preference changes without a
// restart.
package config
