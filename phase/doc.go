// Package phase provides magnitude-only spectrogram inversion.
//
// This package turns a target magnitude spectrogram back into a time-domain
// waveform by estimating a phase that is consistent with it. It supports:
//   - Short-time analysis and overlap-add synthesis with matching window and hop
//   - Griffin-Lim alternating projection, optionally with fast Griffin-Lim momentum
//   - Seeded random or zero initial phase for reproducible output
//   - Hann, Hamming and rectangular windows
package phase
