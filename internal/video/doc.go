// Package video probes recorded files and plans the per-frame zoom
// transforms an exporter or previewer applies to them.
package video
