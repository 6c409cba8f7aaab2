// Command stegoenc hides a text message in the spectrogram of an audio file.
//
// The message is drawn as an image, treated as a magnitude spectrogram,
// turned into sound with Griffin-Lim phase reconstruction and mixed into the
// host recording. Open the output in any spectrogram viewer to read it.
//
// Usage:
//
//	stegoenc [options]
//	stegoenc -config stego.yaml
//	stegoenc -message "HELLO" -host song.mp3 -out song.wav -start 5 -gain -12
//
// Settings come from the defaults, the optional YAML file, SPECSTEGO_*
// environment variables and finally the command-line flags.
//
// Supported host formats: .wav, .mp3, .flac, anything else ffmpeg can decode.
package main
