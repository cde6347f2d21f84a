package dto

// ── 报名模块 DTO ──

// EnrollRequest 管理员登记报名请求
type EnrollRequest struct {
	StudentID     string  `json:"student_id"     binding:"required,uuid"`
	CourseID      string  `json:"course_id"      binding:"required,uuid"`
	PaymentStatus string  `json:"payment_status" binding:"omitempty,oneof=pending paid partial"`
	AmountPaid    float64 `json:"amount_paid"    binding:"omitempty,min=0"`
}

// UpdatePaymentRequest 更新缴费状态请求
type UpdatePaymentRequest struct {
	PaymentStatus string  `json:"payment_status" binding:"required,oneof=pending paid partial"`
	AmountPaid    float64 `json:"amount_paid"    binding:"omitempty,min=0"`
}

// EnrollmentResponse 报名信息响应
type EnrollmentResponse struct {
	ID            string  `json:"id"`
	StudentID     string  `json:"student_id"`
	StudentName   string  `json:"student_name,omitempty"`
	CourseID      string  `json:"course_id"`
	CourseName    string  `json:"course_name,omitempty"`
	CourseFee     float64 `json:"course_fee"`
	EnrolledAt    string  `json:"enrolled_at"`
	PaymentStatus string  `json:"payment_status"`
	AmountPaid    float64 `json:"amount_paid"`
	IsActive      bool    `json:"is_active"`
}

// PaymentSummaryResponse 学生缴费汇总响应
type PaymentSummaryResponse struct {
	Enrollments      []EnrollmentResponse `json:"enrollments"`
	TotalFees        float64              `json:"total_fees"`
	TotalPaid        float64              `json:"total_paid"`
	RemainingBalance float64              `json:"remaining_balance"`
}
