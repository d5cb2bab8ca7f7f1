// Package sink provides output format renderers for engraved layouts.
//
// A "sink" transforms a computed [engrave.Layout] into a final output
// format. This package provides renderers for:
//
//   - SVG: scalable vector output, the native format
//   - JSON: layout data export for external tools and caching
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster image output (requires rsvg-convert)
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout, sink.WithBackground("ivory"))
//	png, err := sink.RenderPNG(layout, sink.WithScale(2))
//
// [RenderPDF] and [RenderPNG] render by first generating SVG, then
// converting via [render.ToPDF] and [render.ToPNG]. These require librsvg
// to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(l engrave.Layout, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Register the format in pkg/pipeline so the CLI and server accept it
//
// [engrave.Layout]: github.com/staveline/staveline/pkg/engrave.Layout
// [render.ToPDF]: github.com/staveline/staveline/pkg/render.ToPDF
// [render.ToPNG]: github.com/staveline/staveline/pkg/render.ToPNG
package sink
