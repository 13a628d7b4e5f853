package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                   *config.Config
	groupHandler          *Group
	meetingHandler        *Meeting
	recommendationHandler *Recommendation
	decisionHandler       *Decision
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	groupHandler *Group,
	meetingHandler *Meeting,
	recommendationHandler *Recommendation,
	decisionHandler *Decision,
) *Router {
	return &Router{
		cfg:                   cfg,
		groupHandler:          groupHandler,
		meetingHandler:        meetingHandler,
		recommendationHandler: recommendationHandler,
		decisionHandler:       decisionHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupGroupRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupGroupRoutes configures group and member routes
func (rt *Router) setupGroupRoutes(g *echo.Group) {
	groups := g.Group("/groups")
	groups.POST("", rt.groupHandler.CreateGroup)
	groups.GET("/:groupID", rt.groupHandler.GetGroup)
	groups.POST("/:groupID/members", rt.groupHandler.AddMember)
	groups.PUT("/:groupID/members/:memberID/restrictions", rt.groupHandler.UpdateRestrictions)

	g.GET("/members/:memberID/visits", rt.groupHandler.VisitHistory)
}

// setupMeetingRoutes configures meeting, recommendation and decision routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/groups/:groupID/meetings")
	meetings.POST("", rt.meetingHandler.CreateMeeting)
	meetings.GET("", rt.meetingHandler.ListMeetings)
	meetings.GET("/:meetingID", rt.meetingHandler.GetMeeting)
	meetings.POST("/:meetingID/finalize", rt.meetingHandler.Finalize)

	meetings.GET("/:meetingID/recommendations", rt.recommendationHandler.GetRecommendations)
	meetings.GET("/:meetingID/suggestions", rt.recommendationHandler.ListSuggestions)
	meetings.POST("/:meetingID/suggestions", rt.recommendationHandler.AddSuggestion)
	meetings.PUT("/:meetingID/preferences/:memberID", rt.recommendationHandler.SubmitPreference)

	meetings.POST("/:meetingID/votes", rt.decisionHandler.RecordVote)
	meetings.GET("/:meetingID/consensus", rt.decisionHandler.GetConsensus)
	meetings.GET("/:meetingID/progress", rt.decisionHandler.StreamProgress)
	meetings.GET("/:meetingID/progress/:memberID", rt.decisionHandler.GetProgress)
	meetings.PUT("/:meetingID/progress/:memberID", rt.decisionHandler.SaveProgress)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
