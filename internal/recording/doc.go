// Package recording runs a capture session: screen video through an
// external encoder alongside cursor tracking, with the cursor sidecar
// written next to the video when the session stops.
package recording
