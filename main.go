package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"TileBoard/internal/config"
	boardnet "TileBoard/internal/net"
	"TileBoard/internal/state"
	"TileBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	discover := flag.Bool("discover", false, "join the first board host found on the local network")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	switch {
	case flag.NArg() > 0 && strings.HasPrefix(flag.Arg(0), boardnet.Scheme):
		addr, err := boardnet.ParseLink(flag.Arg(0))
		if err != nil {
			log.Fatalf("Cannot join: %v", err)
		}
		runClient(cfg, func() (string, error) { return addr, nil })
	case *discover:
		runClient(cfg, func() (string, error) { return boardnet.Browse(cfg.Net.DiscoverTimeout) })
	default:
		runHost(cfg)
	}
}

func runHost(cfg config.Config) {
	log.Println("Starting as HOST")
	session := state.NewSession(cfg.Params())
	board := ui.NewBoardWidget(session)

	hub := boardnet.NewHub(board.ApplyRemote)
	session.OnLocalOp = func(op state.Op) {
		hub.Broadcast(op, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := hub.Serve(ctx, fmt.Sprintf(":%d", cfg.Net.Port)); err != nil {
			log.Printf("Host server stopped: %v", err)
			board.SetStatus(err.Error())
		}
	}()

	if cfg.Net.Advertise {
		server, err := boardnet.Advertise(cfg.Net.Port)
		if err != nil {
			log.Printf("mDNS advertising disabled: %v", err)
		} else {
			defer server.Shutdown()
		}
	}

	shareLink := boardnet.ShareLink(boardnet.OutgoingIP(), cfg.Net.Port)
	ui.RunApp(board, shareLink)
}

func runClient(cfg config.Config, resolve func() (string, error)) {
	log.Println("Starting as CLIENT")
	session := state.NewSession(cfg.Params())
	board := ui.NewBoardWidget(session)
	go connectToHost(resolve, board)
	ui.RunApp(board, "")
}

func connectToHost(resolve func() (string, error), board *ui.BoardWidget) {
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	addr, err := resolve()
	if err != nil {
		board.SetStatus(fmt.Sprintf("No host: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	peer, err := boardnet.Dial(ctx, addr)
	cancel()
	if err != nil {
		board.SetStatus(fmt.Sprintf("Connection failed: %v", err))
		return
	}
	defer peer.Close()
	board.SetStatus("Connected to host as " + peer.LocalAddr())

	err = joinSession(board, peer)
	board.SetStatus(fmt.Sprintf("Disconnected from host: %v", err))
}

// joinSession relays ops between the board and the host until the
// connection drops. Local edits stop going to the peer once it has.
func joinSession(board *ui.BoardWidget, peer *boardnet.Peer) error {
	board.SetLocalOpHandler(func(op state.Op) {
		if err := peer.Send(op); err != nil {
			log.Printf("Failed to send op: %v", err)
		}
	})
	defer board.SetLocalOpHandler(nil)
	return peer.Listen(board.ApplyRemote)
}
