// Command focusframe records the screen with a cursor sidecar and plans
// click-driven zoom effects over the recording.
//
//	focusframe record [output]        capture video and cursor until Ctrl+C
//	focusframe regions list <video>   show the zoom regions of a recording
//	focusframe plan <video>           per-frame transforms for a renderer
//	focusframe cursor <video> --at T  reconstructed pointer at a time
//	focusframe config init|show       manage the TOML configuration
package main
