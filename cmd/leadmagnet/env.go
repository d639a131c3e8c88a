package main

import (
	"io"
	"os"
	"time"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, environment lookup and the external services the
// commands talk to. Nil services are built from configuration.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	Completer leadmagnet.Completer       // generation provider
	Renderers leadmagnet.RendererFactory // PDF surfaces for export
	Surface   leadmagnet.ShareSurface    // native share hand-off
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}
