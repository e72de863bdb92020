package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// Router registers every API route group onto a gin engine.
type Router struct {
	profiles *ProfileHandler
	matches  *MatchHandler
	reports  *ReportHandler
	metrics  *MetricsHandler
}

// NewRouter bundles the handlers for registration.
func NewRouter(profiles *ProfileHandler, matches *MatchHandler, reports *ReportHandler, metrics *MetricsHandler) *Router {
	return &Router{profiles: profiles, matches: matches, reports: reports, metrics: metrics}
}

// Register mounts all routes under the configured API prefix.
func (r *Router) Register(engine *gin.Engine, apiPrefix string) {
	prefix := strings.TrimRight(apiPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := engine.Group(prefix)

	skills := api.Group("/skills")
	{
		skills.GET("", r.profiles.List)
		skills.PUT("/:userId", r.profiles.Submit)
		skills.GET("/:userId", r.profiles.Get)
		skills.DELETE("/:userId", r.profiles.Delete)
		skills.GET("/:userId/matches", r.matches.ListMatches)
		skills.GET("/:userId/matches/:skill", r.matches.MatchesForSkill)
		if r.reports != nil {
			skills.POST("/:userId/matches/export", r.reports.CreateExport)
		}
	}

	if r.reports != nil {
		api.GET("/reports/:id", r.reports.Status)
		api.GET("/export/:token", r.reports.Download)
	}

	if r.metrics != nil {
		engine.GET("/metrics", r.metrics.Prometheus)
		engine.GET("/stats", r.metrics.Stats)
	}
}
