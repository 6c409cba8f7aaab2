// Package spectro maps intensity grids onto magnitude spectrograms and renders
// spectrograms back to images.
//
// A magnitude spectrogram is a *mat.Dense with one row per frequency bin
// (row 0 is DC) and one column per time frame.
package spectro
