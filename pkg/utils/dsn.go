package utils

import (
	"strings"

	"VidTube.com/config"
)

// GetMysqlDsn 根据配置生成mysql连接串
func GetMysqlDsn() string {
	charset := config.ConfigInfo.Mysql.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{config.ConfigInfo.Mysql.Username, ":",
		config.ConfigInfo.Mysql.Password, "@tcp(", config.ConfigInfo.Mysql.Addr, ")/",
		config.ConfigInfo.Mysql.Database, "?charset=" + charset + "&parseTime=true&loc=Local"}, "") //nolint:lll
	if config.ConfigInfo.Mysql.Params != "" {
		dsn += "&" + config.ConfigInfo.Mysql.Params
	}
	return dsn
}
