package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tutorhub/tutoring-backend/config"
	"github.com/tutorhub/tutoring-backend/controllers"
	"github.com/tutorhub/tutoring-backend/middleware"
	"github.com/tutorhub/tutoring-backend/services"
	"github.com/tutorhub/tutoring-backend/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, cfg *config.Config, summarizer *services.Summarizer, uploader *services.Uploader) *gin.Engine {
	r.GET("/health", middleware.DBMiddleware(db), controllers.HealthCheck)

	r.POST("/summarize", controllers.Summarize(summarizer))
	r.POST("/summarize/file", controllers.SummarizeFile(summarizer))
	r.POST("/upload", controllers.UploadFile(uploader))

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db), middleware.OptionalAuth(cfg.JWTSecret))
	{
		api.POST("/auth/token", controllers.IssueToken(cfg.JWTSecret, cfg.JWTTTL))

		api.POST("/tutors", controllers.CreateTutor(cfg.JWTSecret, cfg.JWTTTL))
		api.GET("/tutors/:id", controllers.GetTutor)
		api.POST("/students", controllers.CreateStudent(cfg.JWTSecret, cfg.JWTTTL))
		api.GET("/students/:id", controllers.GetStudent)
		api.GET("/users/search", controllers.SearchUserByEmail)

		api.GET("/courses", controllers.GetCourses)
		api.POST("/courses", controllers.CreateCourse)
		api.POST("/courses/:id/lessons", controllers.CreateLesson)
		api.POST("/courses/:id/enroll", controllers.EnrollStudent)

		api.GET("/lessons", controllers.GetLessons)
		api.POST("/lessons/:id/content-blocks", controllers.CreateContentBlock)
		api.PUT("/lessons/:id/progress", controllers.UpdateLessonProgress)
		api.POST("/lessons/:id/flashcards", controllers.CreateFlashcard)
		api.POST("/lessons/:id/questions", controllers.CreateQuestion)

		api.GET("/questions", controllers.GetQuestions)
		api.GET("/questions/:id/answers", controllers.GetAnswers)
		api.POST("/questions/:id/answers", controllers.CreateAnswer)
	}

	r.GET("/ws/questions/:id", middleware.DBMiddleware(db), ws.HandleQuestionWebSocket)

	return r
}
