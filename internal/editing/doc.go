// Package editing holds the authoring state for one recording: its cursor
// events and the zoom regions applied on top of it, synthesized or added
// by hand, persisted as a YAML project next to the video.
package editing
