package dto

// ── 教师评价模块 DTO ──

// SubmitEvaluationRequest 提交教师评价请求
// 五个维度各 1-5 分；综合评分由服务端计算
type SubmitEvaluationRequest struct {
	CourseID        string `json:"course_id"        binding:"required,uuid"`
	TeachingQuality int    `json:"teaching_quality" binding:"required,min=1,max=5"`
	Communication   int    `json:"communication"    binding:"required,min=1,max=5"`
	Punctuality     int    `json:"punctuality"      binding:"required,min=1,max=5"`
	Knowledge       int    `json:"knowledge"        binding:"required,min=1,max=5"`
	Interaction     int    `json:"interaction"      binding:"required,min=1,max=5"`
	Comments        string `json:"comments"         binding:"omitempty,max=500"`
	Suggestions     string `json:"suggestions"      binding:"omitempty,max=500"`
	IsAnonymous     *bool  `json:"is_anonymous"     binding:"omitempty"`
}

// EvaluationResponse 教师评价响应
type EvaluationResponse struct {
	ID              string  `json:"id"`
	CourseID        string  `json:"course_id"`
	CourseName      string  `json:"course_name,omitempty"`
	TeacherID       string  `json:"teacher_id"`
	TeacherName     string  `json:"teacher_name,omitempty"`
	TeachingQuality int     `json:"teaching_quality"`
	Communication   int     `json:"communication"`
	Punctuality     int     `json:"punctuality"`
	Knowledge       int     `json:"knowledge"`
	Interaction     int     `json:"interaction"`
	OverallRating   float64 `json:"overall_rating"`
	RatingText      string  `json:"rating_text"`
	Comments        string  `json:"comments,omitempty"`
	Suggestions     string  `json:"suggestions,omitempty"`
	IsAnonymous     bool    `json:"is_anonymous"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// EvaluableCourseResponse 可评价课程响应（已报名、有教师、未评价过）
type EvaluableCourseResponse struct {
	CourseID    string `json:"course_id"`
	CourseName  string `json:"course_name"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
}
