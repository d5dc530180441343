// Package http exposes the session commands over HTTP and streams state
// updates to observers. Transport concerns stop here: the coordinator never
// sees gin types.
package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"RiskCockpit/internal/broadcast"
	"RiskCockpit/internal/intake"
	"RiskCockpit/internal/model"
	"RiskCockpit/internal/session"
	"RiskCockpit/internal/timeline"
)

// Router wires the inbound command surface to the coordinator.
type Router struct {
	coord    *session.Coordinator
	hub      *broadcast.Hub
	adminKey string
}

// NewRouter creates the API router.
func NewRouter(coord *session.Coordinator, hub *broadcast.Hub, adminKey string) *Router {
	return &Router{coord: coord, hub: hub, adminKey: adminKey}
}

// Register registers all routes on the group.
func (r *Router) Register(group *gin.RouterGroup) {
	if group == nil {
		return
	}
	group.POST("/join", r.handleJoin)
	group.GET("/state", r.handleState)
	group.GET("/teams/:name", r.handleTeam)
	group.POST("/decision", r.handleDecision)
	group.GET("/stream", r.handleStream)

	admin := group.Group("/admin", r.requireAdminKey)
	admin.POST("/round/start", r.handleStartRound)
	admin.POST("/round/end", r.handleEndRound)
	admin.POST("/reset", r.handleReset)
	admin.GET("/standings", r.handleStandings)
}

// requireAdminKey gates facilitator commands. Real credential handling is an
// external concern; this mirrors the shared-key check of the admin console.
func (r *Router) requireAdminKey(c *gin.Context) {
	if c.GetHeader("X-Admin-Key") != r.adminKey {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
	}
}

type joinRequest struct {
	TeamName string `json:"team_name" binding:"required"`
}

func (r *Router) handleJoin(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ledger, err := r.coord.JoinTeam(req.TeamName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": ledger, "state": r.coord.Snapshot()})
}

func (r *Router) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, r.coord.Snapshot())
}

func (r *Router) handleTeam(c *gin.Context) {
	ledger, err := r.coord.TeamSnapshot(c.Param("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ledger)
}

type decisionRequest struct {
	TeamName string               `json:"team_name" binding:"required"`
	Decision model.DecisionVector `json:"decision"`
}

func (r *Router) handleDecision(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := r.coord.SubmitDecision(req.TeamName, req.Decision); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "locked"})
}

func (r *Router) handleStartRound(c *gin.Context) {
	if err := r.coord.StartRound(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.coord.Snapshot())
}

func (r *Router) handleEndRound(c *gin.Context) {
	if err := r.coord.EndRound(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, r.coord.Snapshot())
}

func (r *Router) handleReset(c *gin.Context) {
	r.coord.Reset()
	c.JSON(http.StatusOK, r.coord.Snapshot())
}

func (r *Router) handleStandings(c *gin.Context) {
	c.JSON(http.StatusOK, r.coord.Standings())
}

// handleStream pushes hub events to the client as server-sent events.
func (r *Router) handleStream(c *gin.Context) {
	events, cancel := r.hub.Subscribe()
	defer cancel()

	c.Stream(func(w io.Writer) bool {
		select {
		case evt, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(evt.Type, evt.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// statusFor maps core errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrUnknownTeam):
		return http.StatusNotFound
	case errors.Is(err, intake.ErrWindowClosed):
		return http.StatusConflict
	case errors.Is(err, session.ErrAlreadyTerminal):
		return http.StatusConflict
	case errors.Is(err, timeline.ErrInvalidRound):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
