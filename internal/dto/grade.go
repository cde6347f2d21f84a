package dto

// ── 成绩模块 DTO ──

// GradeEntry 单个学生的成绩项
type GradeEntry struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	Value     float64 `json:"value"      binding:"required"`
}

// BulkGradeRequest 批量录入成绩请求
// 同一份作业/考试对多名学生一次性录入；整批在一个事务中提交
type BulkGradeRequest struct {
	CourseID       string       `json:"course_id"       binding:"required,uuid"`
	AssignmentName string       `json:"assignment_name" binding:"required,max=100"`
	GradeType      string       `json:"grade_type"      binding:"required,oneof=exam quiz assignment project"`
	MaxGrade       float64      `json:"max_grade"       binding:"required,min=1"`
	Notes          string       `json:"notes"           binding:"omitempty"`
	Entries        []GradeEntry `json:"entries"         binding:"required,min=1,dive"`
}

// GradeListRequest 成绩列表查询参数
type GradeListRequest struct {
	CourseID  string `form:"course_id"  binding:"omitempty,uuid"`
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	GradeType string `form:"type"       binding:"omitempty,oneof=exam quiz assignment project"`
}

// GradeResponse 成绩响应
type GradeResponse struct {
	ID             string  `json:"id"`
	StudentID      string  `json:"student_id"`
	StudentName    string  `json:"student_name,omitempty"`
	CourseID       string  `json:"course_id"`
	CourseName     string  `json:"course_name,omitempty"`
	AssignmentName string  `json:"assignment_name"`
	Grade          float64 `json:"grade"`
	MaxGrade       float64 `json:"max_grade"`
	GradeType      string  `json:"grade_type,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	RecordedAt     string  `json:"recorded_at"`
}

// BulkGradeResponse 批量录入结果
type BulkGradeResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"` // 分数超出 [0, max_grade] 范围被跳过的条数
}
