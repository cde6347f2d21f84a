package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
	Keyword  string `form:"keyword"   binding:"omitempty,max=50"`
	Status   string `form:"status"    binding:"omitempty,oneof=active inactive"`
}

// CreateUserRequest 管理员创建学生/教师请求
// 初始密码使用系统默认值，由管理员告知用户后自行修改
type CreateUserRequest struct {
	Username    string `json:"username"      binding:"required,min=3,max=64"`
	Email       string `json:"email"         binding:"required,email"`
	FullName    string `json:"full_name"     binding:"required,max=100"`
	Phone       string `json:"phone"         binding:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty"`
	Gender      string `json:"gender"        binding:"omitempty,oneof=male female"`
	Address     string `json:"address"       binding:"omitempty"`
	IsActive    *bool  `json:"is_active"     binding:"omitempty"`
}

// UpdateUserRequest 管理员更新用户信息请求
type UpdateUserRequest struct {
	Username    *string `json:"username"      binding:"omitempty,min=3,max=64"`
	Email       *string `json:"email"         binding:"omitempty,email"`
	FullName    *string `json:"full_name"     binding:"omitempty,max=100"`
	Phone       *string `json:"phone"         binding:"omitempty,max=20"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty"`
	Gender      *string `json:"gender"        binding:"omitempty,oneof=male female"`
	Address     *string `json:"address"       binding:"omitempty"`
	IsActive    *bool   `json:"is_active"     binding:"omitempty"`
}

// UpdateProfileRequest 用户更新本人资料请求（不可改用户名/角色）
type UpdateProfileRequest struct {
	FullName       string  `json:"full_name"       binding:"required,max=100"`
	Email          string  `json:"email"           binding:"required,email"`
	Phone          string  `json:"phone"           binding:"omitempty,max=20"`
	DateOfBirth    *string `json:"date_of_birth"   binding:"omitempty"`
	Gender         string  `json:"gender"          binding:"omitempty,oneof=male female"`
	Address        string  `json:"address"         binding:"omitempty"`
	ProfilePicture string  `json:"profile_picture" binding:"omitempty,max=200"`
}
