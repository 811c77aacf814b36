// Package config loads and validates the FocusFrame TOML configuration.
//
// Load merges a file over Default(), expands paths, and validates every
// section. Conversion helpers hand typed settings to the tracking, zoom,
// and playback packages so those packages stay free of file formats.
package config
