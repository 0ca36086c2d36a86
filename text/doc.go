// Package text measures, wraps and draws text for inkframe.
//
// The text pipeline is split into small pieces so that layout math and
// drawing always agree on widths:
//
//   - FontSet: the regular and bold fonts, their sized faces and a glyph mask cache
//   - Measurer: the single width strategy shared by wrapping and drawing
//   - Wrap: greedy word wrap with hard splits for over-long words
//   - Drawer: paints lines of text into any Target pixel buffer
//
// # Example usage
//
//	fonts := text.DefaultFontSet()
//	m := text.NewFaceMeasurer(fonts)
//
//	lines := text.Wrap("The quick brown fox", 120, 16, false, m)
//	d := text.NewDrawer(fonts, m)
//	for i, line := range lines {
//	    d.DrawString(canvas, line, 10, 10+i*text.LineHeight(16), 16, false, inkframe.Black)
//	}
//
// # Measurement strategies
//
// FaceMeasurer sums the hinted glyph advances of the configured fonts, so
// wrapped lines match the drawn glyphs exactly. ApproxMeasurer assumes every
// rune is 0.6 em wide; it needs no font data and makes wrap points easy to
// predict. A renderer picks one strategy and uses it everywhere.
//
// Kerning and shaping are intentionally not applied: a string's width is the
// sum of its rune advances.
package text
