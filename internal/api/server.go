// Package api serves the game state over HTTP for a UI host.
// GET endpoints are public (read-only observation).
// Mutating endpoints require a bearer token when one is configured.
// The simulation core itself has no network dependency; this package is the
// process-level stand-in for a rendering layer.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/oreworks/internal/engine"
	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
	"github.com/talgya/oreworks/internal/persistence"
	"github.com/talgya/oreworks/internal/producers"
)

// Server serves the game state over HTTP. Every handler that touches the
// aggregate takes Mu — the same lock the frame loop holds while ticking.
type Server struct {
	Game     *engine.State
	Mu       *sync.Mutex
	DB       *persistence.DB
	Addr     string
	AdminKey string // Bearer token for mutating endpoints. Empty = mutations open (local play).

	started time.Time
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	handler := s.Handler()
	slog.Info("HTTP API starting", "addr", s.Addr, "auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	s.started = time.Now()

	mux := http.NewServeMux()

	// Public endpoints (GET, read-only).
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/inventory", s.handleInventory)
	mux.HandleFunc("/api/v1/producers", s.handleProducers)
	mux.HandleFunc("/api/v1/producer/", s.guarded(s.handleProducerDelete))
	mux.HandleFunc("/api/v1/mines", s.handleMines)
	mux.HandleFunc("/api/v1/prices", s.handlePrices)

	// Mutating endpoints.
	mux.HandleFunc("/api/v1/mines/press", s.guarded(s.handleMinePress))
	mux.HandleFunc("/api/v1/mines/reset", s.guarded(s.handleMineReset))
	mux.HandleFunc("/api/v1/buy", s.guarded(s.handleBuy))
	mux.HandleFunc("/api/v1/sell", s.guarded(s.handleSell))
	mux.HandleFunc("/api/v1/debug/grant", s.guarded(s.handleGrant))
	mux.HandleFunc("/api/v1/save", s.guarded(s.handleSave))

	return mux
}

// guarded enforces the bearer token, when configured, on mutating handlers.
func (s *Server) guarded(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.AdminKey != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+s.AdminKey {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// goodParam resolves a good key from a request payload field.
func goodParam(key string) (goods.Good, bool) {
	return goods.ByKey(key)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Mu.Lock()
	resp := map[string]any{
		"tick":      s.Game.TickCount,
		"goods":     goods.NumGoods,
		"producers": len(s.Game.Elements),
		"pending_s": exact.Format(s.Game.Clock.Pending()),
		"uptime_s":  int(time.Since(s.started).Seconds()),
	}
	s.Mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

// handleInventory returns the sorted goods view with the theoretical ±rate
// table, exactly what an inventory grid renders.
func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type entry struct {
		Key     string `json:"key"`
		Name    string `json:"name"`
		Amount  string `json:"amount"`  // Exact num/den
		Display string `json:"display"` // Floored, comma-grouped
		Out     string `json:"out_per_s"`
		In      string `json:"in_per_s"`
	}

	s.Mu.Lock()
	holdings := s.Game.Inventory.Sorted()
	rates := engine.TheoreticalRates(s.Game.Producers())
	s.Mu.Unlock()

	out := make([]entry, 0, len(holdings))
	for _, h := range holdings {
		e := entry{
			Key:     h.Good.Properties().Key,
			Name:    h.Good.Properties().Name,
			Amount:  exact.Format(h.Amount),
			Display: humanize.Comma(exact.Floor(h.Amount)),
			Out:     "0",
			In:      "0",
		}
		if rate, ok := rates[h.Good]; ok {
			e.Out = exact.Format(rate.Out)
			e.In = exact.Format(rate.In)
		}
		out = append(out, e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProducers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type entry struct {
		Handle uint64 `json:"handle"`
		Kind   string `json:"kind"`
		Good   string `json:"good"`
		Title  string `json:"title"`
		Open   bool   `json:"open"`
	}

	s.Mu.Lock()
	out := make([]entry, 0, len(s.Game.Elements))
	for _, el := range s.Game.Elements {
		out = append(out, entry{
			Handle: el.Handle,
			Kind:   el.Producer.Kind.Key(),
			Good:   el.Producer.Good.Properties().Key,
			Title:  el.Title,
			Open:   el.Open,
		})
	}
	s.Mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	writeJSON(w, http.StatusOK, out)
}

// handleProducerDelete removes a producer: DELETE /api/v1/producer/{handle}.
func (s *Server) handleProducerDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/api/v1/producer/")
	handle, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		http.Error(w, "bad handle", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	ok := s.Game.RemoveProducer(handle)
	s.Mu.Unlock()

	if !ok {
		http.Error(w, "no such producer", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": handle})
}

func (s *Server) handleMines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type entry struct {
		Good       string `json:"good"`
		Name       string `json:"name"`
		Order      []int  `json:"order"`
		Next       int    `json:"next"`
		Difficulty int    `json:"difficulty"`
		Solved     bool   `json:"solved"`
		Failed     bool   `json:"failed"`
	}

	s.Mu.Lock()
	var out []entry
	for _, g := range goods.GroupGoods(goods.GroupOre) {
		m := s.Game.Mine(g)
		if m == nil {
			continue
		}
		out = append(out, entry{
			Good:       g.Properties().Key,
			Name:       g.Properties().Name,
			Order:      m.Order(),
			Next:       m.Next(),
			Difficulty: m.Difficulty(),
			Solved:     m.IsSolved(),
			Failed:     m.IsFailed(),
		})
	}
	s.Mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type entry struct {
		Good  string `json:"good"`
		Price string `json:"price"`
	}

	s.Mu.Lock()
	var out []entry
	for _, g := range goods.All() {
		if p, ok := s.Game.Prices.Price(g); ok {
			out = append(out, entry{Good: g.Properties().Key, Price: exact.Format(p)})
		}
	}
	s.Mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMinePress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Good  string `json:"good"`
		Value int    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	g, ok := goodParam(req.Good)
	if !ok {
		http.Error(w, "unknown good", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	m, err := s.Game.PressMine(g, req.Value)
	s.Mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"order":  m.Order(),
		"next":   m.Next(),
		"solved": m.IsSolved(),
		"failed": m.IsFailed(),
	})
}

func (s *Server) handleMineReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Good string `json:"good"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	g, ok := goodParam(req.Good)
	if !ok {
		http.Error(w, "unknown good", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	m, err := s.Game.ResetMine(g)
	s.Mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": m.Order(), "next": m.Next()})
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Kind string `json:"kind"`
		Good string `json:"good"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	kind, ok := producers.KindByKey(req.Kind)
	if !ok {
		http.Error(w, "unknown producer kind", http.StatusBadRequest)
		return
	}
	g, ok := goodParam(req.Good)
	if !ok {
		http.Error(w, "unknown good", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	handle, err := s.Game.AddProducer(producers.Producer{Kind: kind, Good: g})
	s.Mu.Unlock()

	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"handle": handle})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Good string `json:"good"`
		Qty  int64  `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	g, ok := goodParam(req.Good)
	if !ok {
		http.Error(w, "unknown good", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	err := s.Game.SellGood(g, req.Qty)
	money := s.Game.Inventory.Get(goods.Money)
	s.Mu.Unlock()

	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"money": exact.Format(money)})
}

// handleSave persists the aggregate on demand, outside the autosave cadence.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "persistence disabled", http.StatusServiceUnavailable)
		return
	}

	s.Mu.Lock()
	err := s.DB.SaveState(s.Game)
	s.Mu.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleGrant credits an arbitrary amount of a good. Debug surface, same as
// the original's slider buttons.
func (s *Server) handleGrant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Good   string `json:"good"`
		Amount string `json:"amount"` // Exact num/den, e.g. "100" or "7/2"
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	g, ok := goodParam(req.Good)
	if !ok {
		http.Error(w, "unknown good", http.StatusBadRequest)
		return
	}
	amount, err := exact.Parse(req.Amount)
	if err != nil || amount.Sign() < 0 {
		http.Error(w, "bad amount", http.StatusBadRequest)
		return
	}

	s.Mu.Lock()
	s.Game.Inventory.Credit(g, amount)
	balance := s.Game.Inventory.Get(g)
	s.Mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"balance": exact.Format(balance)})
}
