// Package tracking captures global pointer activity while a recording is
// running and turns it into a normalized, timestamped event stream.
//
// The Tracker depends on an InputSource rather than a concrete hook so the
// production gohook adapter can be swapped for a scripted source in tests.
// Display geometry is resolved once per session from the capture source id;
// coordinates are clamped into that display and scaled to [0,1]. Recorded
// streams are persisted next to the video as a JSON sidecar.
package tracking
