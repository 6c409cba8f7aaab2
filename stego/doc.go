// Package stego wires the encoder stages together.
//
// The pure stages (pattern, magnitude, reconstruction, fitting, compositing)
// take and return plain data. Run is the only place that touches the
// filesystem: it reads the font and the host recording and writes the mix.
// Every failure is reported as a *StageError naming the stage that failed.
package stego
