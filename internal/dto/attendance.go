package dto

// ── 考勤模块 DTO ──

// CreateSessionRequest 创建考勤场次请求
type CreateSessionRequest struct {
	CourseID    string `json:"course_id"    binding:"required,uuid"`
	SessionDate string `json:"session_date" binding:"required"` // YYYY-MM-DD
	SessionTime string `json:"session_time" binding:"omitempty,max=20"`
	Topic       string `json:"topic"        binding:"omitempty,max=200"`
}

// UpdateAttendanceRequest 批量更新考勤状态请求
// Statuses 以学生 ID 为键；名单中不存在的学生 ID 会被静默忽略
type UpdateAttendanceRequest struct {
	Statuses map[string]string `json:"statuses" binding:"required"`
	Topic    *string           `json:"topic"    binding:"omitempty,max=200"`
}

// SessionListRequest 考勤场次列表查询参数
type SessionListRequest struct {
	CourseID string `form:"course_id" binding:"required,uuid"`
	Date     string `form:"date"      binding:"omitempty"`
}

// SessionResponse 考勤场次响应
type SessionResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name,omitempty"`
	SessionDate string `json:"session_date"`
	SessionTime string `json:"session_time,omitempty"`
	Topic       string `json:"topic,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// AttendanceRecordResponse 考勤记录响应
type AttendanceRecordResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	SessionID   string `json:"session_id"`
	SessionDate string `json:"session_date,omitempty"`
	CourseName  string `json:"course_name,omitempty"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

// SessionDetailResponse 场次详情（含全部学生记录）
type SessionDetailResponse struct {
	Session SessionResponse            `json:"session"`
	Records []AttendanceRecordResponse `json:"records"`
}

// AttendanceStatsResponse 考勤统计响应
type AttendanceStatsResponse struct {
	Total          int64   `json:"total"`
	Present        int64   `json:"present"`
	Absent         int64   `json:"absent"`
	Late           int64   `json:"late"`
	Excused        int64   `json:"excused"`
	AttendanceRate float64 `json:"attendance_rate"` // 百分比，保留 1 位小数
}

// StudentCourseStatsResponse 学生在某门课程中的统计
type StudentCourseStatsResponse struct {
	Attendance       AttendanceStatsResponse `json:"attendance"`
	GradeAverage     float64                 `json:"grade_average"` // 原始分均值，保留 1 位小数
	TotalAssignments int64                   `json:"total_assignments"`
}
