// Package server exposes the generator and archive over HTTP, grounded on
// the teacher's internal/api.Handlers (same request/response shape, same
// gin binding style) but narrowed to the operations this domain stack
// actually has: generating a puzzle, reading the daily archive, and the
// single admin account that schedules it.
package server

import (
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crossplay/mcwgen/internal/auth"
	"github.com/crossplay/mcwgen/internal/realtime"
	"github.com/crossplay/mcwgen/internal/store"
	"github.com/crossplay/mcwgen/pkg/output"
	"github.com/crossplay/mcwgen/pkg/pattern"
	"github.com/crossplay/mcwgen/pkg/puzzle"
)

// Handlers holds the collaborators every route needs.
type Handlers struct {
	store       *store.Store
	authService *auth.AuthService
	hub         *realtime.Hub
	assembler   *puzzle.Assembler
	maxRetries  int
	solveWindow time.Duration

	adminUser string
	adminHash string
}

// NewHandlers builds a Handlers. adminPasswordHash is produced ahead of
// time with authService.HashPassword and supplied via configuration,
// mirroring how the teacher keeps credentials out of source.
func NewHandlers(st *store.Store, authService *auth.AuthService, hub *realtime.Hub, words []string, adminUser, adminPasswordHash string) *Handlers {
	index := pattern.New(words)
	return &Handlers{
		store:       st,
		authService: authService,
		hub:         hub,
		assembler:   puzzle.NewAssembler(index),
		maxRetries:  20,
		solveWindow: 2 * time.Second,
		adminUser:   adminUser,
		adminHash:   adminPasswordHash,
	}
}

// GenerateRequest optionally names a word the puzzle must contain, placed
// in some slot of matching length, per
// spec.md §3's "Forced-word seeding" edge case.
type GenerateRequest struct {
	ForcedWord string `json:"forcedWord"`
}

// GeneratePuzzle runs the assembler until it produces a puzzle whose hash
// has not been archived before, archives it, and broadcasts its arrival.
func (h *Handlers) GeneratePuzzle(c *gin.Context) {
	var req GenerateRequest
	// Body is optional; ignore bind errors on an empty request.
	_ = c.ShouldBindJSON(&req)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var p *puzzle.Puzzle
	for attempt := 0; attempt < h.maxRetries; attempt++ {
		deadline := time.Now().Add(h.solveWindow)
		candidate, err := h.assembler.Generate(rng, deadline, req.ForcedWord)
		if err != nil {
			continue
		}

		hashHex := strings.TrimPrefix(candidate.ID, "mcw_v1_")
		seen, err := h.store.SeenHash(c.Request.Context(), hashHex)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "archive lookup failed"})
			return
		}
		if seen {
			continue
		}

		if err := h.store.Archive(c.Request.Context(), hashHex, candidate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive puzzle"})
			return
		}
		p = candidate
		break
	}

	if p == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not produce a novel puzzle within the retry budget"})
		return
	}

	if h.hub != nil {
		h.hub.BroadcastPuzzleGenerated(p)
	}

	c.JSON(http.StatusCreated, output.FormatJSON(p))
}

// GetDailyPuzzle returns the puzzle archived under the requested date.
func (h *Handlers) GetDailyPuzzle(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	p, err := h.store.GetByDate(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no puzzle assigned to " + date})
		return
	}

	c.JSON(http.StatusOK, output.FormatJSON(p))
}

// AdminLoginRequest carries the single admin account's credentials.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin issues a JWT for the one admin account configured at startup.
func (h *Handlers) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.adminUser || !h.authService.CheckPassword(req.Password, h.adminHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(h.adminUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AssignDailyRequest configures one run of the daily scheduling job.
type AssignDailyRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	Count     int    `json:"count" binding:"required,min=1"`
}

// AssignDaily stamps unassigned archived puzzles with consecutive dates,
// the HTTP-triggerable counterpart of
// original_source/generate_daily_challenges.py.
func (h *Handlers) AssignDaily(c *gin.Context) {
	var req AssignDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}

	assigned, err := h.store.AssignDaily(c.Request.Context(), start, req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assignment failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"assigned": assigned})
}

// ResetDailyRequest bounds the reset to dates after asOf.
type ResetDailyRequest struct {
	AsOf string `json:"asOf" binding:"required"`
}

// ResetDaily clears future date assignments, the counterpart of
// original_source/reset_puzzles.py.
func (h *Handlers) ResetDaily(c *gin.Context) {
	var req ResetDailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asOf, err := time.Parse("2006-01-02", req.AsOf)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be YYYY-MM-DD"})
		return
	}

	reset, err := h.store.ResetUnpublished(c.Request.Context(), asOf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset": reset})
}
