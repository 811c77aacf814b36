// Package playback turns zoom regions into per-frame renderer transforms.
//
// Tick is a pure step function over an explicit State: it finds the
// dominant region, eases scale and focus toward the blended target, and
// derives the pixel transform and motion blur for the current stage. The
// Engine type owns a State for hosts that drive it from a render loop.
// CursorTrack reconstructs the pointer position at arbitrary playback times
// for drawing a cursor overlay.
package playback
