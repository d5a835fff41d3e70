package server

import (
	"net/http"
	"time"

	"clearance/internal/config"
	"clearance/internal/query"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())

	if len(s.config.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.config.CORS.AllowedOrigins,
			AllowMethods:     s.config.CORS.AllowedMethods,
			AllowHeaders:     s.config.CORS.AllowedHeaders,
			AllowCredentials: s.config.CORS.AllowCredentials,
			MaxAge:           time.Duration(s.config.CORS.MaxAge) * time.Second,
		}))
	}

	r.GET("/health", s.healthHandler)
	r.GET("/online", s.onlineHandler)

	api := r.Group("/api")
	{
		// the importer and custom house segments share the :scope parameter
		api.GET("/:year/jobs/:status/:detailedStatus/:scope",
			s.rankedJobsHandler(config.DefaultPartition, query.ScopeImporter))
		api.GET("/:year/jobs/:status/:detailedStatus/:scope/multiple",
			s.rankedJobsHandler(config.DefaultPartition, query.ScopeMultiple))
		api.GET("/:year/jobs/:status/:detailedStatus/:scope/export",
			s.exportJobsHandler(config.DefaultPartition, query.ScopeImporter))
		api.GET("/:year/jobs-list/:status", s.flatJobsHandler(config.DefaultPartition))

		api.GET("/gandhidham/:year/jobs/:status/:detailedStatus/:scope/multiple",
			s.rankedJobsHandler(config.GandhidhamPartition, query.ScopeMultiple))
	}

	return r
}
