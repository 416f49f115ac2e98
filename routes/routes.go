package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/healthquiz-server/controllers"
	"github.com/vnkhanh/healthquiz-server/middleware"
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
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/google/login", controllers.GoogleLogin)
		}
		protected := api.Group("/")
		protected.Use(middleware.AuthJWT())
		{
			protected.GET("/me", controllers.Me)
		}

		// Funnel public: không cần đăng nhập
		quiz := api.Group("/quiz")
		{
			quiz.GET("/questions", controllers.GetQuizQuestions)
			quiz.POST("/sessions", middleware.RateLimitQuizSession(), controllers.StartQuizSession) // QZ-02
			quiz.PUT("/sessions/:token/answers", controllers.SaveQuizAnswers)                      // QZ-03
			quiz.POST("/sessions/:token/submit", controllers.SubmitQuizSession)                    // QZ-04
			quiz.GET("/sessions/:token/result", controllers.GetQuizResult)                         // QZ-05
		}

		// Admin: JWT + cờ admin
		admin := api.Group("/admin")
		admin.Use(middleware.AuthJWT(), middleware.RequireAdmin())
		{
			admin.GET("/questions", controllers.ListQuestions)                 // QZ-10
			admin.POST("/questions", controllers.AddQuestion)                  // QZ-11
			admin.PUT("/questions/reorder", controllers.ReorderQuestions)      // QZ-14
			admin.PUT("/questions/:id", controllers.UpdateQuestion)            // QZ-12
			admin.DELETE("/questions/:id", controllers.DeleteQuestion)         // QZ-13
			admin.POST("/questions/:id/options", controllers.AddOption)        // QZ-15
			admin.PUT("/options/:id", controllers.UpdateOption)                // QZ-15
			admin.DELETE("/options/:id", controllers.DeleteOption)             // QZ-15
			admin.PUT("/options/:id/tags", controllers.AssignOptionTags)       // QZ-16

			admin.GET("/tags", controllers.ListTags)      // QZ-20
			admin.POST("/tags", controllers.CreateTag)    // QZ-20
			admin.PUT("/tags/:id", controllers.UpdateTag) // QZ-20
			admin.DELETE("/tags/:id", controllers.DeleteTag)

			admin.GET("/rules", controllers.ListRules)      // QZ-30
			admin.POST("/rules", controllers.CreateRule)    // QZ-30
			admin.PUT("/rules/:id", controllers.UpdateRule) // QZ-30
			admin.DELETE("/rules/:id", controllers.DeleteRule)

			admin.GET("/products", controllers.ListProducts)                    // QZ-40
			admin.POST("/products", controllers.CreateProduct)                  // QZ-40
			admin.PUT("/products/:id", controllers.UpdateProduct)               // QZ-40
			admin.DELETE("/products/:id", controllers.DeleteProduct)            // QZ-40
			admin.POST("/products/:id/image", controllers.UploadProductImage)   // QZ-41

			admin.GET("/sessions", controllers.ListSessions)                    // QZ-50
			admin.GET("/sessions/dashboard", controllers.GetSessionDashboard)   // QZ-52
			admin.GET("/sessions/:id", controllers.GetSessionDetail)            // QZ-51

			admin.POST("/exports", controllers.CreateExport)        // QZ-60
			admin.GET("/exports/:job_id", controllers.GetExport)    // QZ-60
			admin.POST("/uploads", controllers.UploadFile)
		}
	}
}
