// Package uci implements the subset of the UCI protocol
// (http://wbec-ridderkerk.nl/html/UCIProtocol.html) this engine's
// command-line front end drives: position setup,
// go/stop, and a handful of setoption knobs over search.Options.
package uci

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/book"
	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/search"
	"github.com/corvidchess/corvid/timing"
)

const name = "corvid"
const author = "corvidchess"

// ErrQuit is returned by Execute for the "quit" command; callers
// should stop reading input and exit.
var ErrQuit = fmt.Errorf("quit")

// UCI holds one engine session's mutable state: the current position,
// the options in effect, and the bookkeeping for an in-flight search.
type UCI struct {
	out    io.Writer
	logger Logger
	file   config.File
	book   *book.Book

	board dt.Board
	moves []dt.Move

	mu        sync.Mutex
	searching bool
	stop      atomic.Bool
	last      search.SearchResult
	done      chan struct{}
}

// New builds a session writing engine output to out.
func New(out io.Writer) *UCI {
	return &UCI{
		out:    out,
		logger: NulLogger{},
		file:   config.Default(),
		board:  dt.ParseFen(dt.Startpos),
	}
}

// SetLogger replaces the search progress logger (default: NulLogger).
func (u *UCI) SetLogger(logger Logger) {
	u.logger = logger
}

// SetConfig replaces the configuration in effect for future "go" commands.
func (u *UCI) SetConfig(file config.File) {
	u.file = file
}

// SetBook installs an opening book consulted before every search; nil
// disables it.
func (u *UCI) SetBook(b *book.Book) {
	u.book = b
}

// Execute dispatches a single line of UCI input. It returns ErrQuit on
// "quit"; any other error is a malformed command the caller may log
// and continue past.
func (u *UCI) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "uci":
		return u.handleUCI()
	case "isready":
		return u.handleIsReady()
	case "ucinewgame":
		return u.handleNewGame()
	case "position":
		return u.handlePosition(args)
	case "go":
		return u.handleGo(args)
	case "stop":
		return u.handleStop()
	case "setoption":
		return u.handleSetOption(args)
	case "quit":
		return ErrQuit
	default:
		return nil
	}
}

func (u *UCI) printf(format string, a ...interface{}) {
	fmt.Fprintf(u.out, format, a...)
}

func (u *UCI) handleUCI() error {
	u.printf("id name %s\n", name)
	u.printf("id author %s\n", author)
	u.printf("option name Hash type spin default %d min 1 max 4096\n", u.file.HashSizeMB)
	u.printf("option name Clear Hash type button\n")
	u.printf("uciok\n")
	return nil
}

func (u *UCI) handleIsReady() error {
	u.printf("readyok\n")
	return nil
}

func (u *UCI) handleNewGame() error {
	u.board = dt.ParseFen(dt.Startpos)
	u.moves = nil
	return nil
}

// handlePosition implements "position [startpos|fen <fen>] [moves ...]".
func (u *UCI) handlePosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uci: position requires an argument")
	}

	var rest []string
	switch args[0] {
	case "startpos":
		u.board = dt.ParseFen(dt.Startpos)
		rest = args[1:]
	case "fen":
		if len(args) < 7 {
			return fmt.Errorf("uci: fen requires 6 fields")
		}
		u.board = dt.ParseFen(strings.Join(args[1:7], " "))
		rest = args[7:]
	default:
		return fmt.Errorf("uci: expected 'startpos' or 'fen', got %q", args[0])
	}

	u.moves = nil
	if len(rest) == 0 {
		return nil
	}
	if rest[0] != "moves" {
		return fmt.Errorf("uci: expected 'moves', got %q", rest[0])
	}

	board := u.board
	for _, tok := range rest[1:] {
		mv, ok := parseMove(&board, tok)
		if !ok {
			return fmt.Errorf("uci: illegal move %q", tok)
		}
		u.moves = append(u.moves, mv)
		_ = board.Apply(mv)
	}
	return nil
}

func parseMove(b *dt.Board, uciMove string) (dt.Move, bool) {
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == uciMove {
			return mv, true
		}
	}
	return 0, false
}

// goParams collects the subset of "go" arguments this engine parses.
// "nodes" is copied into search.Options.MaxNodes, which the search
// does not enforce.
type goParams struct {
	wtime, btime, winc, binc time.Duration
	movetime                 time.Duration
	depth                    uint8
	nodes                    uint32
	infinite                 bool
}

func parseGoParams(args []string) goParams {
	var p goParams
	asMillis := func(s string) time.Duration {
		n, _ := strconv.Atoi(s)
		return time.Duration(n) * time.Millisecond
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			if i+1 < len(args) {
				i++
				p.wtime = asMillis(args[i])
			}
		case "btime":
			if i+1 < len(args) {
				i++
				p.btime = asMillis(args[i])
			}
		case "winc":
			if i+1 < len(args) {
				i++
				p.winc = asMillis(args[i])
			}
		case "binc":
			if i+1 < len(args) {
				i++
				p.binc = asMillis(args[i])
			}
		case "movetime":
			if i+1 < len(args) {
				i++
				p.movetime = asMillis(args[i])
			}
		case "depth":
			if i+1 < len(args) {
				i++
				n, _ := strconv.Atoi(args[i])
				p.depth = uint8(n)
			}
		case "nodes":
			if i+1 < len(args) {
				i++
				n, _ := strconv.Atoi(args[i])
				p.nodes = uint32(n)
			}
		case "infinite":
			p.infinite = true
		}
	}
	return p
}

// handleGo starts a search in the background; it returns immediately,
// and the result is printed as "bestmove ..." once the search ends,
// or once handleStop sets the stop flag.
func (u *UCI) handleGo(args []string) error {
	u.mu.Lock()
	if u.searching {
		u.mu.Unlock()
		return fmt.Errorf("uci: search already in progress")
	}
	board := u.board
	moves := append([]dt.Move(nil), u.moves...)
	u.mu.Unlock()

	if mv, ok := u.bookMove(&board); ok {
		u.printf("bestmove %s\n", mv.String())
		return nil
	}

	u.mu.Lock()
	u.searching = true
	u.stop.Store(false)
	u.done = make(chan struct{})
	u.mu.Unlock()

	params := parseGoParams(args)
	options := u.file.ToOptions()
	if params.depth > 0 {
		options.MaxDepth = params.depth
	}
	if params.nodes > 0 {
		options.MaxNodes = params.nodes
	}
	options = options.Clamp()

	manager := u.buildManager(params, &board)

	h := &searchHandler{
		uci:      u,
		logger:   u.logger,
		manager:  manager,
		deadline: time.Now().Add(time.Hour),
	}

	go func() {
		defer close(u.done)
		h.logger.BeginSearch()
		h.start = time.Now()
		err := search.Run(h, board, moves, options)
		h.logger.EndSearch()

		u.mu.Lock()
		u.searching = false
		u.last = h.last
		u.mu.Unlock()

		if err == search.ErrNoMoves {
			u.printf("bestmove 0000\n")
			return
		}
		u.printf("bestmove %s\n", h.last.Move.String())
	}()

	return nil
}

// bookMove picks a book move for board, weighted by each candidate's
// Polyglot weight, favoring the book's own statistics over search.
func (u *UCI) bookMove(board *dt.Board) (dt.Move, bool) {
	if u.book == nil {
		return 0, false
	}
	moves, weights, ok := u.book.Moves(board)
	if !ok {
		return 0, false
	}

	var total int
	for _, w := range weights {
		total += int(w) + 1
	}
	pick := rand.Intn(total)
	for i, w := range weights {
		pick -= int(w) + 1
		if pick < 0 {
			return moves[i], true
		}
	}
	return moves[len(moves)-1], true
}

func (u *UCI) buildManager(params goParams, board *dt.Board) timing.Manager {
	if params.infinite {
		return nil
	}
	if params.movetime > 0 {
		return timing.NewFixed(params.movetime)
	}

	timeLeft, inc := params.wtime, params.winc
	if !board.Wtomove {
		timeLeft, inc = params.btime, params.binc
	}
	if timeLeft == 0 {
		return nil
	}
	budget := timeLeft/20 + inc/2
	return timing.NewStandard(timeLeft, float64(budget)/float64(timeLeft), 50*time.Millisecond)
}

func (u *UCI) handleStop() error {
	u.mu.Lock()
	done := u.done
	u.stop.Store(true)
	u.mu.Unlock()
	if done != nil {
		<-done
	}
	return nil
}

func (u *UCI) handleSetOption(args []string) error {
	// "name <Name> [value <Value>]" with possibly multi-word names.
	joined := strings.Join(args, " ")
	const nameMarker = "name "
	idx := strings.Index(joined, nameMarker)
	if idx < 0 {
		return fmt.Errorf("uci: malformed setoption")
	}
	rest := joined[idx+len(nameMarker):]

	optionName, optionValue := rest, ""
	if vi := strings.Index(rest, " value "); vi >= 0 {
		optionName = rest[:vi]
		optionValue = rest[vi+len(" value "):]
	}

	switch optionName {
	case "Clear Hash":
		u.file.HashSizeMB = config.Default().HashSizeMB
	case "Hash":
		mb, err := strconv.Atoi(optionValue)
		if err != nil {
			return fmt.Errorf("uci: invalid Hash value %q", optionValue)
		}
		u.file.HashSizeMB = mb
	}
	return nil
}

// searchHandler adapts one "go" invocation to search.Handler, folding
// a stop flag and a timing.Manager's deadline into TimeUp.
type searchHandler struct {
	uci     *UCI
	logger  Logger
	manager timing.Manager

	start    time.Time
	deadline time.Time
	last     search.SearchResult
}

func (h *searchHandler) TimeUp() bool {
	if h.uci.stop.Load() {
		return true
	}
	if h.manager == nil {
		return false
	}
	return time.Now().After(h.deadline)
}

func (h *searchHandler) SearchResult(r search.SearchResult) {
	h.last = r
	h.logger.PrintPV(r)
	if h.manager != nil {
		now := time.Now()
		remaining := h.manager.Update(r, now.Sub(h.start))
		h.start = now
		h.deadline = now.Add(remaining)
	}
}
