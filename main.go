package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"InkBoard/internal/config"
	"InkBoard/internal/gesture"
	"InkBoard/internal/logx"
	inknet "InkBoard/internal/net"
	"InkBoard/internal/state"
	"InkBoard/internal/ui"
)

const saveDelay = 500 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	docPath := flag.String("doc", "", "document to open and keep saved")
	discover := flag.Bool("discover", false, "list boards on the local network and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logx.ParseLevel(cfg.Log.Level),
	})))

	if *discover {
		if err := runDiscover(); err != nil {
			logx.Logger().Error("[FEED] discovery failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := runHost(cfg, *docPath); err != nil {
		logx.Logger().Error("exiting", "err", err)
		os.Exit(1)
	}
}

func runDiscover() error {
	return inknet.Browse(3*time.Second, func(s inknet.Service) {
		fmt.Printf("%s\t%s\n", s.Name, s.Link)
	})
}

func runHost(cfg config.Config, docPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pen := gesture.NewPen()
	pen.Color = cfg.Pen.Color
	pen.Width = cfg.Pen.Width
	store := state.NewStore()
	session := gesture.NewSession(store, pen)

	var onOpen func(string)
	if docPath != "" {
		doc, err := loadDocument(docPath)
		if err != nil {
			return err
		}
		session.Open(doc)
		s, opening := autosave(store, docPath, saveDelay)
		defer s.Flush()
		onOpen = opening
	}

	shareLink := ""
	if cfg.Feed.Addr != "" {
		link, err := startFeed(ctx, cfg.Feed, store)
		if err != nil {
			return err
		}
		shareLink = link
	}

	ui.Run(ui.Options{Session: session, Export: cfg.Export, ShareLink: shareLink, OnOpen: onOpen})
	return nil
}

// startFeed serves the change feed in the background and, if configured,
// announces it over mDNS. It returns the link other machines watch.
func startFeed(ctx context.Context, fc config.Feed, store *state.Store) (string, error) {
	port, err := inknet.ListenPort(fc.Addr)
	if err != nil {
		return "", err
	}
	feed := inknet.NewFeed()
	if err := feed.Publish(store.Snapshot()); err != nil {
		return "", err
	}
	store.Subscribe(func(c state.Change) {
		if err := feed.Publish(c); err != nil {
			logx.Logger().Warn("[FEED] publish failed", "err", err)
		}
	})
	go func() {
		if err := inknet.Serve(ctx, fc.Addr, feed); err != nil {
			logx.Logger().Error("[FEED] stopped", "err", err)
		}
	}()

	if fc.Advertise {
		server, err := inknet.Advertise(port)
		if err != nil {
			logx.Logger().Warn("[FEED] not advertising", "err", err)
		} else {
			context.AfterFunc(ctx, func() { server.Shutdown() })
		}
	}
	return inknet.ShareLink(inknet.GetOutgoingIP(), port), nil
}

// loadDocument reads path, treating a missing file as an empty document.
func loadDocument(path string) (state.Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		logx.Logger().Info("[STORE] starting new document", "path", path)
		return state.Document{Version: state.DocumentVersion}, nil
	}
	if err != nil {
		return state.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	doc, err := state.Decode(f)
	if err != nil {
		return state.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	logx.Logger().Info("[STORE] opened", "path", path, "strokes", len(doc.Strokes))
	return doc, nil
}
