package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/neurlang/specstego/codec"
	"github.com/neurlang/specstego/phase"
	"github.com/neurlang/specstego/spectro"
	"gonum.org/v1/gonum/mat"
)

func main() {
	rate := flag.Int("rate", 22050, "Sample rate to analyze at")
	frameSize := flag.Int("frame", 2048, "FFT frame size")
	hop := flag.Int("hop", 512, "Hop length")
	window := flag.String("window", "hann", "Window: hann, hamming, rect")
	linear := flag.Bool("linear", false, "Linear instead of decibel intensity")
	f16 := flag.Bool("f16", false, "Also dump raw magnitudes as half floats")
	flag.Parse()

	// Check if the filename argument is provided
	if flag.NArg() < 1 {
		fmt.Println("Usage: spectroview [options] <audio_file>")
		os.Exit(1)
	}
	filename := flag.Arg(0)

	samples, err := codec.Load(filename, *rate)
	if err != nil {
		fmt.Printf("Error loading audio: %v\n", err)
		os.Exit(1)
	}

	mag, err := spectro.Analyze(samples, *frameSize, *hop, phase.Window(*window))
	if err != nil {
		fmt.Printf("Error computing spectrogram: %v\n", err)
		os.Exit(1)
	}

	if err := writePNG(filename+".png", mag, !*linear); err != nil {
		fmt.Printf("Error writing spectrogram: %v\n", err)
		os.Exit(1)
	}

	if *f16 {
		if err := writeF16(filename+".f16", spectro.Pack(mag)); err != nil {
			fmt.Printf("Error writing magnitudes: %v\n", err)
			os.Exit(1)
		}
	}
}

func writePNG(name string, mag mat.Matrix, logScale bool) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := spectro.WritePNG(f, mag, logScale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeF16(name string, packed []uint16) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, packed); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
