package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/peterkuimelis/parley/internal/game"
	"github.com/peterkuimelis/parley/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// ResultLister reads recent battle results.
type ResultLister interface {
	RecentResults(ctx context.Context, limit int) ([]storage.BattleRecord, error)
}

// ResultInfo is the JSON representation of a finished battle for /api/results.
type ResultInfo struct {
	ID             string    `json:"id"`
	Player         string    `json:"player"`
	Opponent       string    `json:"opponent"`
	Victory        bool      `json:"victory"`
	Decided        bool      `json:"decided"`
	Winner         string    `json:"winner,omitempty"`
	Turns          int       `json:"turns"`
	FinalResolve   int       `json:"finalResolve"`
	FinalComposure int       `json:"finalComposure"`
	FinalHostility int       `json:"finalHostility"`
	Reason         string    `json:"reason"`
	EndedAt        time.Time `json:"endedAt"`
}

const defaultResultsLimit = 20

// Server is the parley web UI server.
type Server struct {
	decksFile string
	results   ResultLister // optional
	logger    *zap.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server. results and logger may be nil.
func NewServer(decksFile string, results ResultLister, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		decksFile: decksFile,
		results:   results,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler serving the UI and API.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	// Static CSS/JS
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/cards", s.handleCards)
	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("GET /api/results", s.handleResults)

	// WebSocket proxy
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// loadContent parses the decks file. A missing file yields nil content so
// built-in cards can still be listed.
func (s *Server) loadContent() (*game.Content, error) {
	if s.decksFile == "" {
		return nil, nil
	}
	return game.ParseContentFile(s.decksFile)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	content, err := s.loadContent()
	if err != nil {
		s.logger.Warn("load content for cards", zap.Error(err))
		content = nil
	}
	writeJSON(w, cardInfos(content))
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	content, err := s.loadContent()
	if err != nil || content == nil {
		s.logger.Warn("load content for decks", zap.Error(err))
		http.Error(w, "could not load decks file", http.StatusInternalServerError)
		return
	}
	writeJSON(w, deckInfos(content))
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	infos := []ResultInfo{}
	if s.results != nil {
		records, err := s.results.RecentResults(r.Context(), limit)
		if err != nil {
			s.logger.Error("list results", zap.Error(err))
			http.Error(w, "could not list results", http.StatusInternalServerError)
			return
		}
		for _, rec := range records {
			ri := ResultInfo{
				ID:             rec.ID,
				Player:         rec.PlayerName,
				Opponent:       rec.OpponentName,
				Victory:        rec.Victory,
				Decided:        rec.Decided,
				Turns:          rec.Turns,
				FinalResolve:   rec.FinalResolve,
				FinalComposure: rec.FinalComposure,
				FinalHostility: rec.FinalHostility,
				Reason:         rec.Reason,
				EndedAt:        rec.EndedAt,
			}
			if rec.Decided {
				ri.Winner = rec.Winner.String()
			}
			infos = append(infos, ri)
		}
	}
	writeJSON(w, infos)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()

	// Read initial connect message from browser
	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.logger.Warn("websocket read connect", zap.Error(err))
		return
	}

	var connectMsg struct {
		Type       string `json:"type"`
		Addr       string `json:"addr"`
		DeckNumber int    `json:"deck_number"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	// Open TCP connection to battle server
	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", connectMsg.Addr)
	if err != nil {
		errMsg, _ := json.Marshal(map[string]string{
			"type":  "error",
			"error": fmt.Sprintf("Could not connect to battle server at %s: %v", connectMsg.Addr, err),
		})
		wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()
	s.logger.Info("websocket proxy connected", zap.String("addr", connectMsg.Addr), zap.Int("deck", connectMsg.DeckNumber))

	// Send join message over TCP
	joinMsg, _ := json.Marshal(map[string]any{
		"type":        "join",
		"deck_number": connectMsg.DeckNumber,
	})
	joinMsg = append(joinMsg, '\n')
	if _, err := tcpConn.Write(joinMsg); err != nil {
		s.logger.Warn("tcp write join", zap.Error(err))
		return
	}

	done := make(chan struct{})

	// TCP → WebSocket (server messages to browser)
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if err != io.EOF {
					s.logger.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.logger.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP (browser responses to server)
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.logger.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "battle ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
