package app

import (
	"quiz_sensei_backend/internal/config"
	"quiz_sensei_backend/internal/middleware"
	"quiz_sensei_backend/internal/model"
	"quiz_sensei_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerStudentRoutes 学生/通用接口：取卷、交卷、个人成绩与资料
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/user/profile", c.user.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)

	rg.GET("/quiz/:link", c.quiz.GetByLink)
	rg.POST("/quizzes/:id/submit", c.result.Submit)
	rg.GET("/results", c.result.ListMine)
	rg.GET("/results/:id", c.result.Get)
}

// registerTeacherRoutes 教师接口：题库、分类、试卷、评阅和学生成绩
func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/categories", c.category.List)
		teacher.POST("/categories", c.category.Create)
		teacher.PUT("/categories/:id", c.category.Update)
		teacher.DELETE("/categories/:id", c.category.Delete)

		teacher.GET("/questions", c.question.Select)
		teacher.POST("/questions", c.question.Create)
		teacher.POST("/questions/image", c.question.UploadImage)
		teacher.GET("/questions/:id", c.question.Get)
		teacher.PUT("/questions/:id", c.question.Update)
		teacher.DELETE("/questions/:id", c.question.Delete)
		teacher.POST("/questions/:id/favorite", c.question.ToggleFavorite)

		teacher.GET("/quizzes", c.quiz.List)
		teacher.POST("/quizzes", c.quiz.Create)
		teacher.GET("/quizzes/:id", c.quiz.Get)
		teacher.PUT("/quizzes/:id", c.quiz.Update)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)
		teacher.POST("/quizzes/:id/send-link", c.quiz.SendLink)

		teacher.POST("/reviews", c.review.Review)
		teacher.GET("/users/:id/results", c.user.GetUserResults)
	}
}
