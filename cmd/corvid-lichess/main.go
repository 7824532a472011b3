// Command corvid-lichess drives this engine as a Lichess bot account,
// using the Bot API's plain chunked-HTTP NDJSON event and game streams
// (https://lichess.org/api#tag/Bot) rather than a framed protocol, so
// there is no client library from the example pack to reach for here.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/config"
	"github.com/corvidchess/corvid/search"
)

var (
	token      = flag.String("token", "", "Lichess bot API token")
	configPath = flag.String("config", "", "path to a corvid.yaml settings file")
)

const baseURL = "https://lichess.org"

type client struct {
	http  *http.Client
	token string
}

func (c *client) stream(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.http.Do(req)
}

func (c *client) get(path string, out interface{}) error {
	resp, err := c.stream(path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("lichess: %s returned %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) post(path string, body io.Reader) error {
	req, err := http.NewRequest(http.MethodPost, baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("lichess: %s returned %s", path, resp.Status)
	}
	return nil
}

func main() {
	flag.Parse()
	if *token == "" {
		log.Fatal("corvid-lichess: -token is required")
	}

	file := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("reading %s: %v", *configPath, err)
		}
		file = loaded
	}

	c := &client{http: &http.Client{Timeout: 0}, token: *token}
	var account struct {
		ID string `json:"id"`
	}
	if err := c.get("/api/account", &account); err != nil {
		log.Fatalf("fetching account id: %v", err)
	}

	b := &bot{c: c, options: file.ToOptions(), accountID: account.ID}
	b.run()
}

type bot struct {
	c         *client
	options   search.Options
	accountID string
}

// incomingEvent mirrors the subset of Lichess's event stream payload
// (challenge, gameStart) this bot acts on.
type incomingEvent struct {
	Type      string `json:"type"`
	Challenge struct {
		ID string `json:"id"`
	} `json:"challenge"`
	Game struct {
		ID string `json:"id"`
	} `json:"game"`
}

func (b *bot) run() {
	for {
		if err := b.streamEvents(); err != nil {
			log.Println("event stream:", err)
		}
		time.Sleep(5 * time.Second)
	}
}

func (b *bot) streamEvents() error {
	resp, err := b.c.stream("/api/stream/event")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev incomingEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}
		switch ev.Type {
		case "challenge":
			if err := b.c.post("/api/challenge/"+ev.Challenge.ID+"/accept", nil); err != nil {
				log.Println("accept challenge:", err)
			}
		case "gameStart":
			go func(id string) {
				if err := b.playGame(id); err != nil {
					log.Println("game", id, "ended with error:", err)
				}
			}(ev.Game.ID)
		}
	}
	return scanner.Err()
}

type gameState struct {
	Moves  string `json:"moves"`
	WTime  int64  `json:"wtime"`
	BTime  int64  `json:"btime"`
	WInc   int64  `json:"winc"`
	BInc   int64  `json:"binc"`
	Status string `json:"status"`
}

// gameEvent mirrors Lichess's per-game stream: a gameFull event once,
// carrying the players and an embedded initial state, then a
// gameState event per ply with the fields promoted to the top level.
type gameEvent struct {
	Type  string `json:"type"`
	White struct {
		ID string `json:"id"`
	} `json:"white"`
	State gameState `json:"state"`
	gameState
}

func (b *bot) playGame(gameID string) error {
	resp, err := b.c.stream("/api/bot/game/stream/" + gameID)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	weAreWhite := true
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev gameEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			continue
		}

		var state gameState
		switch ev.Type {
		case "gameFull":
			state = ev.State
			weAreWhite = strings.EqualFold(ev.White.ID, b.accountID)
		case "gameState":
			state = ev.gameState
		default:
			continue
		}

		if state.Status != "" && state.Status != "started" && state.Status != "created" {
			return nil
		}

		board, moves := replay(state.Moves)
		if board.Wtomove != weAreWhite {
			continue
		}

		mv, ok := b.chooseMove(board, moves, state, weAreWhite)
		if !ok {
			continue
		}
		if err := b.c.post("/api/bot/game/"+gameID+"/move/"+mv.String(), nil); err != nil {
			log.Println("submit move:", err)
		}
	}
	return scanner.Err()
}

func replay(moveList string) (dt.Board, []dt.Move) {
	board := dt.ParseFen(dt.Startpos)
	if moveList == "" {
		return board, nil
	}

	var moves []dt.Move
	walker := board
	for _, tok := range strings.Fields(moveList) {
		for _, mv := range walker.GenerateLegalMoves() {
			if mv.String() == tok {
				moves = append(moves, mv)
				_ = walker.Apply(mv)
				break
			}
		}
	}
	return board, moves
}

// chooseMove allocates roughly a twentieth of the remaining clock
// (plus half the increment) and runs iterative deepening until
// options.MaxDepth or that budget is exhausted.
func (b *bot) chooseMove(board dt.Board, moves []dt.Move, state gameState, weAreWhite bool) (dt.Move, bool) {
	timeLeft := time.Duration(state.BTime) * time.Millisecond
	inc := time.Duration(state.BInc) * time.Millisecond
	if weAreWhite {
		timeLeft = time.Duration(state.WTime) * time.Millisecond
		inc = time.Duration(state.WInc) * time.Millisecond
	}
	budget := timeLeft/20 + inc/2
	if budget < 50*time.Millisecond {
		budget = 50 * time.Millisecond
	}

	h := &deadlineHandler{deadline: time.Now().Add(budget)}
	err := search.Run(h, board, moves, b.options)
	if err != nil && err != search.ErrTerminated {
		log.Println("search:", err)
		return 0, false
	}
	return h.last.Move, h.got
}

type deadlineHandler struct {
	deadline time.Time
	last     search.SearchResult
	got      bool
}

func (h *deadlineHandler) TimeUp() bool { return time.Now().After(h.deadline) }
func (h *deadlineHandler) SearchResult(r search.SearchResult) {
	h.last = r
	h.got = true
}
