package dto

// ── 课程模块 DTO ──

// CourseListRequest 课程列表查询参数
type CourseListRequest struct {
	PaginationRequest
	Keyword   string `form:"keyword"    binding:"omitempty,max=50"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name          string  `json:"name"           binding:"required,max=100"`
	Description   string  `json:"description"    binding:"omitempty"`
	TeacherID     *string `json:"teacher_id"     binding:"omitempty,uuid"`
	DurationHours int     `json:"duration_hours" binding:"omitempty,min=1"`
	StartDate     string  `json:"start_date"     binding:"omitempty"`
	EndDate       string  `json:"end_date"       binding:"omitempty"`
	Fee           float64 `json:"fee"            binding:"omitempty,min=0"`
	MaxStudents   int     `json:"max_students"   binding:"omitempty,min=1"`
	IsActive      *bool   `json:"is_active"      binding:"omitempty"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name          *string  `json:"name"           binding:"omitempty,max=100"`
	Description   *string  `json:"description"    binding:"omitempty"`
	TeacherID     *string  `json:"teacher_id"     binding:"omitempty"` // 传空字符串表示取消指派
	DurationHours *int     `json:"duration_hours" binding:"omitempty,min=1"`
	StartDate     *string  `json:"start_date"     binding:"omitempty"`
	EndDate       *string  `json:"end_date"       binding:"omitempty"`
	Fee           *float64 `json:"fee"            binding:"omitempty,min=0"`
	MaxStudents   *int     `json:"max_students"   binding:"omitempty,min=1"`
	IsActive      *bool    `json:"is_active"      binding:"omitempty"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	TeacherID     string  `json:"teacher_id,omitempty"`
	TeacherName   string  `json:"teacher_name,omitempty"`
	DurationHours int     `json:"duration_hours,omitempty"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	Fee           float64 `json:"fee"`
	MaxStudents   int     `json:"max_students"`
	EnrolledCount int64   `json:"enrolled_count"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at,omitempty"`
}
