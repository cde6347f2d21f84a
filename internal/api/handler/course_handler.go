package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/service"
	"github.com/emad-ai/adeeb-institute-websit/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

func handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 13002, "指派的教师不存在或不是教师角色")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "日期格式错误，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// ListCourses 课程列表
// 管理员可见全部课程；其他角色只看启用课程
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	role, _ := MustGetRole(c)
	activeOnly := role != model.RoleAdmin

	list, total, err := h.courseSvc.ListCourses(c.Request.Context(), &req, activeOnly)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// ListOpenCourses 在招课程（注册页公开接口，无需认证）
// GET /api/v1/courses/open
func (h *CourseHandler) ListOpenCourses(c *gin.Context) {
	var req dto.CourseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.courseSvc.ListCourses(c.Request.Context(), &req, true)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreateCourse 创建课程
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.Created(c, result)
}

// GetCourse 课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	result, err := h.courseSvc.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateCourse 更新课程
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.courseSvc.UpdateCourse(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// DeactivateCourse 下架课程（软删除）
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeactivateCourse(c *gin.Context) {
	if err := h.courseSvc.DeactivateCourse(c.Request.Context(), c.Param("id")); err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListCourseStudents 课程在册学生名单
// GET /api/v1/courses/:id/students
func (h *CourseHandler) ListCourseStudents(c *gin.Context) {
	result, err := h.courseSvc.ListCourseStudents(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMyCourses 教师本人的授课课程
// GET /api/v1/teacher/courses
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.courseSvc.ListTeacherCourses(c.Request.Context(), userID)
	if err != nil {
		handleCourseError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/course_handler.go
