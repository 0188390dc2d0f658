package main

import (
	"flag"
	"os"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 0, "Concurrent tile workers per render (0 = all CPUs)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := renderer.NewDefaultLogger(*debug)
	webServer := server.NewServer(*port, *workers, logger)

	if err := webServer.Start(); err != nil {
		logger.Info("server stopped", "error", err)
		os.Exit(1)
	}
}
