// Package zoom models zoom regions and the pure algorithms around them:
// synthesizing auto-zoom regions from recorded clicks, reducing cursor
// movement to focus keyframes, merging auto and manual regions, and
// resolving which region dominates playback at a given time along with its
// spline-interpolated focus point.
//
// Nothing here keeps state or fails: malformed or empty input degrades to
// "no regions" / "no dominant region".
package zoom
