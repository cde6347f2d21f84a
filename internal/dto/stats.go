package dto

// ── 仪表盘 / 统计模块 DTO ──

// AdminDashboardResponse 管理员仪表盘
type AdminDashboardResponse struct {
	TotalStudents     int64                   `json:"total_students"`
	TotalTeachers     int64                   `json:"total_teachers"`
	TotalCourses      int64                   `json:"total_courses"`
	TotalEnrollments  int64                   `json:"total_enrollments"`
	TotalFeesPaid     float64                 `json:"total_fees_paid"`
	PendingPayments   int64                   `json:"pending_payments"`
	RecentEnrollments []EnrollmentResponse    `json:"recent_enrollments"`
	MonthlyAttendance AttendanceStatsResponse `json:"monthly_attendance"`
	PopularCourses    []CoursePopularity      `json:"popular_courses"`
}

// CoursePopularity 课程报名热度
type CoursePopularity struct {
	CourseName      string `json:"course_name"`
	EnrollmentCount int64  `json:"enrollment_count"`
}

// TeacherDashboardResponse 教师仪表盘
type TeacherDashboardResponse struct {
	MyCourses      []CourseResponse  `json:"my_courses"`
	TotalStudents  int64             `json:"total_students"`
	TotalCourses   int               `json:"total_courses"`
	RecentSessions []SessionResponse `json:"recent_sessions"`
	RecentGrades   []GradeResponse   `json:"recent_grades"`
	AttendanceRate float64           `json:"attendance_rate"` // 本月，百分比
}

// StudentDashboardResponse 学生仪表盘
type StudentDashboardResponse struct {
	TotalCourses        int                    `json:"total_courses"`
	AttendanceRate      float64                `json:"attendance_rate"`
	GradeAverage        float64                `json:"grade_average"`
	TotalFees           float64                `json:"total_fees"`
	TotalPaid           float64                `json:"total_paid"`
	RecentGrades        []GradeResponse        `json:"recent_grades"`
	UpcomingSessions    []SessionResponse      `json:"upcoming_sessions"`
	UnreadNotifications []NotificationResponse `json:"unread_notifications"`
}

// ── 管理员统计页 ──

// MonthlyEnrollmentStat 月度报名统计
type MonthlyEnrollmentStat struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// PaymentStat 缴费状态统计
type PaymentStat struct {
	PaymentStatus string  `json:"payment_status"`
	Count         int64   `json:"count"`
	TotalAmount   float64 `json:"total_amount"`
}

// CoursePerformanceStat 课程成绩表现
type CoursePerformanceStat struct {
	CourseName   string  `json:"course_name"`
	AverageGrade float64 `json:"average_grade"`
	GradeCount   int64   `json:"grade_count"`
}

// CourseAttendanceStat 课程考勤率
type CourseAttendanceStat struct {
	CourseName     string  `json:"course_name"`
	TotalRecords   int64   `json:"total_records"`
	PresentCount   int64   `json:"present_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// StatisticsResponse 统计页汇总响应
type StatisticsResponse struct {
	MonthlyEnrollments []MonthlyEnrollmentStat `json:"monthly_enrollments"`
	PaymentStats       []PaymentStat           `json:"payment_stats"`
	CoursePerformance  []CoursePerformanceStat `json:"course_performance"`
	AttendanceRates    []CourseAttendanceStat  `json:"attendance_rates"`
}
