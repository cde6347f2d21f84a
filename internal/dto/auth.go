package dto

// ── 认证模块请求 ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username   string `json:"username"    binding:"required,min=3,max=64"`
	Password   string `json:"password"    binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RegisterRequest 学生自助注册请求
// 注册时必须选择一门在招课程，用户与报名记录在同一事务内创建
type RegisterRequest struct {
	Username    string `json:"username"      binding:"required,min=3,max=64"`
	Email       string `json:"email"         binding:"required,email"`
	Password    string `json:"password"      binding:"required,min=6"`
	FullName    string `json:"full_name"     binding:"required,max=100"`
	Phone       string `json:"phone"         binding:"required,max=20"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Gender      string `json:"gender"        binding:"required,oneof=male female"`
	Address     string `json:"address"       binding:"omitempty"`
	CourseID    string `json:"course_id"     binding:"required,uuid"`
}

// RefreshRequest 刷新 Token 请求
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=6"`
}
