package main

import (
	"flag"
	"log"
	"net/http"
	"os/exec"
	"runtime"
	"strings"
	"time"

	httpserver "glinski/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // headless hosts have no browser
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func main() {
	addr := flag.String("addr", "127.0.0.1:2889", "listen address")
	webDir := flag.String("web", "./web", "directory with the desktop client")
	mobileDir := flag.String("mobile", "", "directory with the mobile client (defaults to -web)")
	origins := flag.String("origins", "", "comma separated origins allowed for CORS and websockets")
	idle := flag.Duration("idle", 0, "drop games untouched for this long (0 keeps them forever)")
	open := flag.Bool("open", true, "open the default browser")
	flag.Parse()

	srv := httpserver.NewServer(httpserver.Config{
		WebDir:         *webDir,
		MobileDir:      *mobileDir,
		AllowedOrigins: splitOrigins(*origins),
	})

	if *idle > 0 {
		go func() {
			tick := time.NewTicker(*idle / 2)
			defer tick.Stop()
			for range tick.C {
				if ids := srv.Games().Prune(*idle); len(ids) > 0 {
					log.Printf("pruned %d idle games", len(ids))
				}
			}
		}()
	}

	log.Printf("listening on %s, serving static from %s", *addr, *webDir)

	if *open {
		// give ListenAndServe a moment to bind
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := *addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host + "/")
		}()
	}

	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal(err)
	}
}
