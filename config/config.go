package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.max_request_body", 512*1024*1024)
	viper.SetDefault("server.upload_dir", os.TempDir())
	viper.SetDefault("server.pprof_addr", ":6060")
	viper.SetDefault("server.allow_origins", []string{"http://localhost:8870", "http://localhost:8888"})
	viper.SetDefault("log.level", "info")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.max_open_conns", 64)
	viper.SetDefault("mysql.max_idle_conns", 16)
	viper.SetDefault("minio.endpoint", "localhost:9002")
	viper.SetDefault("minio.public_url", "http://localhost:9002")
	viper.SetDefault("jwt.realm", "vidtube")
	viper.SetDefault("jwt.timeout", "24h")
	viper.SetDefault("snowflake.worker_id", 1)
	viper.SetDefault("snowflake.datacenter_id", 1)
	viper.SetDefault("sentinel.qps", 2000)
	viper.SetDefault("jaeger.service_name", "vidtube-api")
	viper.SetDefault("jaeger.sample_rate", 1)
}

// Init 先加载 .env 再读取 config.yml, 环境变量(如 MINIO_ENDPOINT、JWT_SECRET)优先级高于配置文件
func Init() {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		// 没有配置文件时仍然使用默认值和环境变量启动
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, falling back to defaults: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
			return
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Jwt.Secret == "" {
		logrus.Warn("jwt.secret is empty, every authenticated request will be rejected")
	}
}

// 手动从viper获取配置值, 这样环境变量也能覆盖到每个字段
func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.MaxRequestBody = viper.GetInt("server.max_request_body")
	ConfigInfo.Server.UploadDir = viper.GetString("server.upload_dir")
	ConfigInfo.Server.Pprof = viper.GetBool("server.pprof")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")

	ConfigInfo.Log.Level = viper.GetString("log.level")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.Params = viper.GetString("mysql.params")
	ConfigInfo.Mysql.MaxOpen = viper.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdle = viper.GetInt("mysql.max_idle_conns")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Minio.Endpoint = viper.GetString("minio.endpoint")
	ConfigInfo.Minio.AccessKey = viper.GetString("minio.access_key")
	ConfigInfo.Minio.SecretKey = viper.GetString("minio.secret_key")
	ConfigInfo.Minio.UseSSL = viper.GetBool("minio.use_ssl")
	ConfigInfo.Minio.PublicURL = viper.GetString("minio.public_url")

	ConfigInfo.Jwt.Secret = viper.GetString("jwt.secret")
	ConfigInfo.Jwt.Realm = viper.GetString("jwt.realm")
	ConfigInfo.Jwt.Timeout = viper.GetString("jwt.timeout")

	ConfigInfo.Snowflake.WorkerID = viper.GetInt64("snowflake.worker_id")
	ConfigInfo.Snowflake.DatacenterID = viper.GetInt64("snowflake.datacenter_id")

	ConfigInfo.Sentinel.QPS = viper.GetFloat64("sentinel.qps")

	ConfigInfo.Jaeger.ServiceName = viper.GetString("jaeger.service_name")
	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")
	ConfigInfo.Jaeger.SampleRate = viper.GetFloat64("jaeger.sample_rate")
}
