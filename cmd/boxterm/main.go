package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/boxterm/config"
	"github.com/lixenwraith/boxterm/document"
	"github.com/lixenwraith/boxterm/event"
	"github.com/lixenwraith/boxterm/render"
	"github.com/lixenwraith/boxterm/session"
	"github.com/lixenwraith/boxterm/terminal"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if rendering crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			// Use \r\n for raw mode compatibility to avoid zig-zag output
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mBOXTERM CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.LogDir, cfg.Debug); logFile != nil {
		defer logFile.Close()
	}
	log.Printf("boxterm: starting, config %q, tab stop %d, color %s", cfg.Path, cfg.TabStop, cfg.Mode())

	doc := document.New()
	v := newViewer(doc)

	s := session.New(terminal.NewBackend(os.Stdin, os.Stdout), doc,
		session.WithEscapeDelay(cfg.EscapeDelay),
		session.WithRenderOptions(render.WithTabStop(cfg.TabStop), render.WithColorMode(cfg.Mode())),
		session.WithFilter(v.filter),
		session.WithMouse(),
	)

	signals, err := start(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer signals.Stop()
	// Normal exit terminal cleanup
	defer s.Cleanup()

	v.quit = func() { s.Queue().Push(event.RequestStop) }
	doc.SetBody(v.view())

	if err := s.Run(context.Background()); err != nil {
		log.Printf("boxterm: %v", err)
	}
	log.Printf("boxterm: exiting")
}

// start watches signals before entering raw mode so an early interrupt becomes a stop request
func start(s *session.Session) (*terminal.SignalWatcher, error) {
	signals := terminal.WatchSignals(s.Queue())
	if err := s.Start(); err != nil {
		signals.Stop()
		return nil, err
	}
	return signals, nil
}
