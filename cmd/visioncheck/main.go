package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/park285/Xiangqi-Advisor-bot/internal/visionfeed"
)

func main() {
	baseURL := os.Getenv("VISION_BASE_URL")
	wsURL := os.Getenv("VISION_WS_URL")
	origin := os.Getenv("VISION_WS_ORIGIN")
	token := os.Getenv("VISION_AUTH_TOKEN")

	if baseURL == "" {
		log.Fatal("VISION_BASE_URL is required")
	}

	headers := func() map[string]string {
		m := map[string]string{}
		if origin != "" {
			m["Origin"] = origin
		}
		if token != "" {
			m["Authorization"] = "Bearer " + token
		}
		return m
	}

	client := visionfeed.NewClient(baseURL,
		visionfeed.WithHeaderProvider(headers),
		visionfeed.WithTimeout(8*time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := client.Health(ctx)
	if err != nil {
		log.Printf("/health error: %v", err)
	} else {
		log.Printf("/health ok: status=%s version=%s", st.Status, st.Version)
	}

	if wsURL == "" {
		log.Println("VISION_WS_URL not set; skipping WS check")
		return
	}

	ws := visionfeed.NewWebSocket(wsURL, 5, time.Second)
	// Propagate headers to WS handshake if needed
	ws.SetHeaderProvider(headers)
	ws.OnStateChange(func(state visionfeed.WebSocketState) {
		log.Printf("WS state: %s", state)
	})
	ws.OnEvent(func(ev *visionfeed.Event) {
		fmt.Printf("WS frame type=%s seq=%d room=%s player=%s rows=%d\n",
			ev.Type, ev.Seq, ev.Room, ev.Player, len(ev.Cells))
	})

	cctx, ccancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ccancel()
	if err := ws.Connect(cctx); err != nil {
		log.Printf("WS connect error: %v", err)
		return
	}

	// Observe for a short window
	t := time.NewTimer(10 * time.Second)
	<-t.C

	_ = ws.Close(context.Background())
}
