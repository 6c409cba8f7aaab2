// Package raster renders message text into an 8-bit intensity grid.
//
// Rows of the grid become frequency bins and columns become time frames once
// the grid is mapped onto a spectrogram. Text is drawn with a scalable
// TrueType face when one is available and with a fixed bitmap face otherwise.
package raster
