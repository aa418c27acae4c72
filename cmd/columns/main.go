package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/columns/internal/columns"
	"github.com/rocketscienceinc/columns/internal/config"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the config file")
	logPath := flag.String("log", "", "write logs to this file")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	conf := config.MustLoad(*configPath)

	logger, closeLog, err := initLogger(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	var sound soundPlayer = silentSound{}
	if !*mute {
		if sound, err = newSpeakerSound(); err != nil {
			// the game runs without sound
			logger.Warn("audio initialization failed", "error", err)
			sound = silentSound{}
		}
	}
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g := newGame(logger, sound, conf.Board.Rows, conf.Board.Columns, func() columns.Source {
		return columns.NewRandomSource(rand.Uint64())
	})

	interval := conf.TickInterval
	if interval <= 0 {
		interval = time.Second
	}

	run(screen, g, interval)
}

func run(screen tcell.Screen, g *game, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			eventChan <- ev
			if ev == nil {
				return
			}
		}
	}()

	g.draw(screen)

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !g.apply(actionFor(ev.Key(), ev.Rune())) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			case nil:
				return
			}

		case <-ticker.C:
			g.step()
		}

		g.draw(screen)
	}
}

func initLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = file.Close() }, nil
}
