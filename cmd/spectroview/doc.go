// Command spectroview renders the spectrogram of an audio file as a PNG image.
//
// Use it to check that a message hidden by stegoenc is readable.
//
// Usage:
//
//	spectroview [options] <audio_file>
//
// The output PNG file will be named <audio_file>.png. With -f16 the raw
// magnitudes are also written as little-endian half floats to <audio_file>.f16.
//
// Supported input formats: .wav, .mp3, .flac, anything else ffmpeg can decode.
package main
