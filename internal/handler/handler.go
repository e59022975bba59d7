package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/BarkinBalci/combat-log-analytics-service/docs"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/dto"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/service"
)

// RequestIDHeader carries the id that correlates a request with its log lines
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

type Handler struct {
	matchService service.MatchServicer
	router       *gin.Engine
	maxLogBytes  int64
	log          *zap.Logger
}

func NewHandler(matchService service.MatchServicer, maxLogBytes int64, log *zap.Logger) *Handler {
	h := &Handler{
		matchService: matchService,
		router:       gin.Default(),
		maxLogBytes:  maxLogBytes,
		log:          log,
	}

	h.router.Use(requestID())
	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)

	match := h.router.Group("/api/match")
	match.POST("", h.ingestMatch)
	match.POST("/async", h.enqueueMatch)
	match.GET("/:matchId", h.getKills)
	match.GET("/:matchId/summary", h.getSummary)
	match.GET("/:matchId/:heroName/items", h.getItems)
	match.GET("/:matchId/:heroName/spells", h.getSpells)
	match.GET("/:matchId/:heroName/damage", h.getDamage)

	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// requestID echoes the caller's X-Request-ID or assigns a new one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service and its match store are reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	if err := h.matchService.Ping(c.Request.Context()); err != nil {
		h.log.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ingestMatch handles POST /api/match
// @Summary Ingest a combat log
// @Description Parse a raw combat log and store its events under a new match id
// @Tags matches
// @Accept plain
// @Produce json
// @Param combatLog body string true "Raw combat log text"
// @Success 201 {object} dto.IngestMatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match [post]
func (h *Handler) ingestMatch(c *gin.Context) {
	combatLog, ok := h.readCombatLog(c)
	if !ok {
		return
	}

	matchID, err := h.matchService.IngestCombatLog(c.Request.Context(), combatLog)
	if err != nil {
		h.writeError(c, err, "Failed to ingest combat log")
		return
	}

	h.log.Info("Match ingested",
		zap.String("match_id", matchID),
		zap.String("request_id", c.GetString(requestIDKey)))

	c.JSON(http.StatusCreated, dto.IngestMatchResponse{MatchID: matchID})
}

// enqueueMatch handles POST /api/match/async
// @Summary Queue a combat log
// @Description Queue a raw combat log for asynchronous ingestion. The match id is reserved immediately; queries return 404 until the consumer has stored it.
// @Tags matches
// @Accept plain
// @Produce json
// @Param combatLog body string true "Raw combat log text"
// @Success 202 {object} dto.IngestMatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/async [post]
func (h *Handler) enqueueMatch(c *gin.Context) {
	combatLog, ok := h.readCombatLog(c)
	if !ok {
		return
	}

	matchID, err := h.matchService.EnqueueCombatLog(c.Request.Context(), combatLog)
	if err != nil {
		h.writeError(c, err, "Failed to queue combat log")
		return
	}

	h.log.Info("Match queued",
		zap.String("match_id", matchID),
		zap.String("request_id", c.GetString(requestIDKey)))

	c.JSON(http.StatusAccepted, dto.IngestMatchResponse{
		MatchID: matchID,
		Status:  "queued",
	})
}

// getKills handles GET /api/match/{matchId}
// @Summary Kills per hero
// @Description Kill count of every hero that scored a kill, in order of first kill
// @Tags matches
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {array} dto.HeroKills
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/{matchId} [get]
func (h *Handler) getKills(c *gin.Context) {
	var uri dto.MatchURI
	if !h.bindURI(c, &uri) {
		return
	}

	kills, err := h.matchService.GetKills(c.Request.Context(), uri.MatchID)
	if err != nil {
		h.writeError(c, err, "Failed to get kills", zap.String("match_id", uri.MatchID))
		return
	}

	c.JSON(http.StatusOK, kills)
}

// getSummary handles GET /api/match/{matchId}/summary
// @Summary Match summary
// @Description Event counts per kind, heroes involved and match duration
// @Tags matches
// @Produce json
// @Param matchId path string true "Match ID"
// @Success 200 {object} dto.MatchSummary
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/{matchId}/summary [get]
func (h *Handler) getSummary(c *gin.Context) {
	var uri dto.MatchURI
	if !h.bindURI(c, &uri) {
		return
	}

	summary, err := h.matchService.GetSummary(c.Request.Context(), uri.MatchID)
	if err != nil {
		h.writeError(c, err, "Failed to get match summary", zap.String("match_id", uri.MatchID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getItems handles GET /api/match/{matchId}/{heroName}/items
// @Summary Items bought by a hero
// @Description Every item purchase of the hero in log order
// @Tags heroes
// @Produce json
// @Param matchId path string true "Match ID"
// @Param heroName path string true "Hero name without the npc_dota_hero_ prefix"
// @Success 200 {array} dto.HeroItem
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/{matchId}/{heroName}/items [get]
func (h *Handler) getItems(c *gin.Context) {
	var uri dto.HeroURI
	if !h.bindURI(c, &uri) {
		return
	}

	items, err := h.matchService.GetItems(c.Request.Context(), uri.MatchID, uri.HeroName)
	if err != nil {
		h.writeError(c, err, "Failed to get items",
			zap.String("match_id", uri.MatchID), zap.String("hero", uri.HeroName))
		return
	}

	c.JSON(http.StatusOK, items)
}

// getSpells handles GET /api/match/{matchId}/{heroName}/spells
// @Summary Spells cast by a hero
// @Description Cast count of each ability the hero used
// @Tags heroes
// @Produce json
// @Param matchId path string true "Match ID"
// @Param heroName path string true "Hero name without the npc_dota_hero_ prefix"
// @Success 200 {array} dto.HeroSpells
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/{matchId}/{heroName}/spells [get]
func (h *Handler) getSpells(c *gin.Context) {
	var uri dto.HeroURI
	if !h.bindURI(c, &uri) {
		return
	}

	spells, err := h.matchService.GetSpells(c.Request.Context(), uri.MatchID, uri.HeroName)
	if err != nil {
		h.writeError(c, err, "Failed to get spells",
			zap.String("match_id", uri.MatchID), zap.String("hero", uri.HeroName))
		return
	}

	c.JSON(http.StatusOK, spells)
}

// getDamage handles GET /api/match/{matchId}/{heroName}/damage
// @Summary Damage taken by a hero
// @Description Damage instances and total damage dealt to the hero, per attacker
// @Tags heroes
// @Produce json
// @Param matchId path string true "Match ID"
// @Param heroName path string true "Hero name without the npc_dota_hero_ prefix"
// @Success 200 {array} dto.HeroDamage
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/match/{matchId}/{heroName}/damage [get]
func (h *Handler) getDamage(c *gin.Context) {
	var uri dto.HeroURI
	if !h.bindURI(c, &uri) {
		return
	}

	damage, err := h.matchService.GetDamage(c.Request.Context(), uri.MatchID, uri.HeroName)
	if err != nil {
		h.writeError(c, err, "Failed to get damage",
			zap.String("match_id", uri.MatchID), zap.String("hero", uri.HeroName))
		return
	}

	c.JSON(http.StatusOK, damage)
}

// readCombatLog reads the request body, rejecting bodies above maxLogBytes
func (h *Handler) readCombatLog(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxLogBytes)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.log.Warn("Combat log too large",
				zap.Int64("limit_bytes", maxBytesErr.Limit),
				zap.String("request_id", c.GetString(requestIDKey)))
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error:   "payload_too_large",
				Message: err.Error(),
			})
			return "", false
		}

		h.log.Warn("Failed to read request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return "", false
	}

	return string(body), true
}

func (h *Handler) bindURI(c *gin.Context, uri any) bool {
	if err := c.ShouldBindUri(uri); err != nil {
		h.log.Warn("Invalid path parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return false
	}
	return true
}

// writeError maps service errors to status codes
func (h *Handler) writeError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	fields = append(fields, zap.Error(err), zap.String("request_id", c.GetString(requestIDKey)))

	switch {
	case errors.Is(err, service.ErrEmptyCombatLog):
		h.log.Warn(msg, fields...)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, repository.ErrMatchNotFound):
		h.log.Info(msg, fields...)
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, queue.ErrPayloadTooLarge):
		h.log.Warn(msg, fields...)
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error:   "payload_too_large",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrQueueUnavailable):
		h.log.Warn(msg, fields...)
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "queue_unavailable",
			Message: err.Error(),
		})
	default:
		h.log.Error(msg, fields...)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
