package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/fatih/color"

	"github.com/corvidchess/corvid/book"
	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/uci"
)

var (
	buildVersion = "(devel)"

	configPath = flag.String("config", "", "path to a corvid.yaml settings file")
	bookPath   = flag.String("book", "", "path to a Polyglot-format opening book")
	quiet      = flag.Bool("quiet", false, "suppress the startup banner")
	bench      = flag.Int("bench", 0, "run a fixed-depth search from the startpos and report nodes/nps/cache stats, instead of reading UCI commands")
)

func main() {
	flag.Parse()

	if !*quiet {
		color.New(color.FgCyan).Printf("corvid %v, built with %v, running on %v\n",
			buildVersion, runtime.Version(), runtime.GOARCH)
	}

	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")

	file := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("reading %s: %v", *configPath, err)
		}
		file = loaded
	}

	if *bench > 0 {
		runBench(*bench, file)
		return
	}

	session := uci.New(os.Stdout)
	session.SetConfig(file)
	session.SetLogger(uci.NewInfoLogger())

	if *bookPath != "" {
		b, err := book.Load(*bookPath)
		if err != nil {
			log.Fatalf("loading book %s: %v", *bookPath, err)
		}
		session.SetBook(b)
	}

	bio := bufio.NewReader(os.Stdin)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			break
		}
		if err := session.Execute(string(line)); err != nil {
			if err == uci.ErrQuit {
				return
			}
			fmt.Fprintln(os.Stderr, "info string error:", err)
		}
	}
}

// benchHandler never reports TimeUp, letting runBench search to a fixed
// depth uninterrupted, and keeps only the final iteration's stats.
type benchHandler struct {
	last search.SearchResult
}

func (*benchHandler) TimeUp() bool { return false }

func (h *benchHandler) SearchResult(r search.SearchResult) {
	h.last = r
}

// runBench searches the startpos to depth and reports nodes, nps, and
// the transposition cache's hit ratio for that run.
func runBench(depth int, file config.File) {
	options := file.ToOptions()
	options.MaxDepth = uint8(depth)
	options = options.Clamp()

	h := &benchHandler{}
	start := time.Now()
	err := search.Run(h, dt.ParseFen(dt.Startpos), nil, options)
	elapsed := time.Since(start)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}

	nps := float64(h.last.Nodes) / elapsed.Seconds()
	total := h.last.CacheHit + h.last.CacheMiss
	var hitRatio float64
	if total > 0 {
		hitRatio = float64(h.last.CacheHit) / float64(total)
	}

	fmt.Printf("depth %d nodes %d time %s nps %.0f cachehit %.3f\n",
		h.last.Depth, h.last.Nodes, elapsed, nps, hitRatio)
}
