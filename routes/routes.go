package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-link/controllers"
	"github.com/vnkhanh/survey-link/middleware"
)

func SetupRoutes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", middleware.RateLimitSessionCreate(), controllers.CreateSession)
			sessions.GET("/:id", controllers.GetSession)
			sessions.DELETE("/:id", controllers.DeleteSession)

			// soạn thảo (chỉ phiên AUTHOR)
			sessions.PUT("/:id/view", controllers.SetView)
			sessions.PUT("/:id/survey", controllers.UpdateSurvey)
			sessions.POST("/:id/questions", controllers.AddQuestion)
			sessions.PUT("/:id/questions/reorder", controllers.ReorderQuestions)
			sessions.PUT("/:id/questions/:qid", controllers.UpdateQuestion)
			sessions.DELETE("/:id/questions/:qid", controllers.DeleteQuestion)
			sessions.POST("/:id/generate", controllers.GenerateSurvey)

			// nhập câu trả lời (AUTHOR preview lẫn FILL)
			sessions.PUT("/:id/answers/:qid", controllers.SetAnswer)
			sessions.POST("/:id/answers/:qid/toggle", controllers.ToggleOption)
			sessions.POST("/:id/answers/:qid/rows", controllers.AddRow)
			sessions.DELETE("/:id/answers/:qid/rows/:index", controllers.RemoveRow)
			sessions.PUT("/:id/answers/:qid/rows/:index", controllers.SetCell)

			// gửi
			sessions.POST("/:id/submit", middleware.RateLimitSubmit(), controllers.SubmitResponse)
			sessions.POST("/:id/submit/retry", controllers.RetrySubmit)

			// phản hồi cục bộ + kết xuất
			sessions.GET("/:id/responses", controllers.GetResponses)
			sessions.GET("/:id/export", controllers.ExportResponses)

			// chia sẻ
			sessions.POST("/:id/share", controllers.ShareSurvey)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/endpoint", controllers.GetEndpoint)
			settings.PUT("/endpoint", controllers.SaveEndpoint)
		}
	}
}
