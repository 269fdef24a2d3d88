package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-html2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// NewConverter builds the converter used for a batch. workers bounds
	// how many renderers run at once.
	NewConverter func(env html2pdf.Environment, logger *log.Logger, workers int) Converter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Getenv:       os.Getenv,
		Environ:      os.Environ,
		NewConverter: newPoolConverter,
	}
}

// newPoolConverter wraps a library converter in a Pool of the given size.
func newPoolConverter(env html2pdf.Environment, logger *log.Logger, workers int) Converter {
	conv := html2pdf.NewConverter(
		html2pdf.WithEnvironment(env),
		html2pdf.WithLogger(logger),
	)
	return html2pdf.NewPool(conv, workers)
}
