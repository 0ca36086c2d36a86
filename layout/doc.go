// Package layout arranges plugin data on the panel and renders frames.
//
// A Template divides the screen below a fixed header into zones, each
// showing one plugin. The Compositor turns a template and the current
// plugin data into a recording.DrawList; the Engine plays that list into
// the configured backend, quantizes the canvas for the panel and encodes
// it.
//
// Built-in templates are "dashboard" and one "focus-<plugin>" layout per
// plugin kind. Unknown layout names render the dashboard.
package layout
