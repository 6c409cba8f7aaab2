// Package codec loads host recordings as mono sample vectors and saves mixed
// output as PCM WAV.
//
// Supported inputs:
//   - WAV through go-audio/wav
//   - MP3 through beep
//   - FLAC through mewkiz/flac
//   - anything else ffmpeg can read, when ffmpeg is on PATH
//
// Samples are float64 in [-1, 1]. Multichannel input is averaged to mono and
// resampled to the requested rate.
package codec
