// Package memowall renders short markdown memos onto a fixed-size canvas,
// typically a desktop wallpaper.
//
// The pipeline is Parse -> Layout -> Rasterize. Layout measures the whole
// document once, picks a scale factor so the content fits the canvas
// height (never below MinScale), then places every line at the scaled
// size. Rendering is synchronous and deterministic.
//
//	img, err := memowall.Render(text, memowall.RenderOptions{Width: 1920, Height: 1080})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Wrap and MaxCharsForWidth are a separate, cruder utility for producing a
// hard-wrapped plain-text copy of the memo.
package memowall
