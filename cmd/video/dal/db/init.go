package db

import (
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init 绑定共享的数据库连接, 连接由 pkg/database 统一创建
func Init(gdb *gorm.DB) {
	DB = gdb
}
