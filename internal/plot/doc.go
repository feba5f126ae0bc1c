// Package plot renders analysis figures as PNG files.
//
// Line-based figures (distributions with KDE overlays, scatter plots,
// time series, missing-value bars) render through go-chart. The
// correlation heatmap and grouped box plot are drawn directly onto a
// raster with image/draw and basicfont labels because go-chart has no
// native heatmap or box plot type.
//
// Figures implement the Figure interface and are rendered concurrently
// by the Renderer with a bounded errgroup.
package plot
