package database

import (
	"strings"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/config"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

// Models 所有需要建表的模型
var Models = []interface{}{
	&model.User{},
	&model.Video{},
	&model.Comment{},
	&model.Tweet{},
	&model.Like{},
	&model.Subscription{},
	&model.Playlist{},
	&model.PlaylistVideo{},
}

// GormConfig 生产环境和测试共用的gorm配置, TranslateError 让唯一索引冲突变成 gorm.ErrDuplicatedKey
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	}
}

// Init 连接mysql并注册opentracing插件
func Init() (*gorm.DB, error) {
	dsn := utils.GetMysqlDsn()
	hlog.Infof("connecting mysql %s/%s", config.ConfigInfo.Mysql.Addr, config.ConfigInfo.Mysql.Database)
	DB, err := gorm.Open(mysql.Open(dsn), GormConfig())
	if err != nil {
		return nil, errors.WithMessage(err, "open mysql failed")
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		return nil, errors.WithMessage(err, "register gorm opentracing plugin failed")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(config.ConfigInfo.Mysql.MaxOpen)
	sqlDB.SetMaxIdleConns(config.ConfigInfo.Mysql.MaxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return DB, nil
}

func Migrate(DB *gorm.DB) error {
	return errors.WithMessage(DB.AutoMigrate(Models...), "auto migrate failed")
}

// IsDuplicateKey 判断是否为唯一索引冲突, 兼容没有开启 TranslateError 的连接
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
