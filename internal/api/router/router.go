package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/cv-ranker/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "cv-ranker",
		})
	})

	rankingHandler := handler.NewRankingJobHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/ranking-jobs")
		{
			// POST /api/v1/ranking-jobs - Submit a ranking job
			jobs.POST("", rankingHandler.CreateRankingJob)

			// GET /api/v1/ranking-jobs/:job_id/status - Job status
			jobs.GET("/:job_id/status", rankingHandler.GetJobStatus)

			// GET /api/v1/ranking-jobs/:job_id/results - Ranking results
			jobs.GET("/:job_id/results", rankingHandler.GetJobResults)
		}
	}

	return r
}
