package oss

import (
	"os"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// InitMinio 配置文件优先, 未配置时读取 MINIO_* 环境变量
func InitMinio() (*MinioStorage, error) {
	c := config.ConfigInfo.Minio
	endpoint := firstNonEmpty(c.Endpoint, getEnvOrDefault("MINIO_ENDPOINT", "localhost:9002"))
	accessKeyID := firstNonEmpty(c.AccessKey, getEnvOrDefault("MINIO_ACCESS_KEY", "vidtube_minio_admin"))
	secretAccessKey := firstNonEmpty(c.SecretKey, os.Getenv("MINIO_SECRET_KEY"))
	useSSL := c.UseSSL || getEnvOrDefault("MINIO_USE_SSL", "false") == "true"
	publicURL := firstNonEmpty(c.PublicURL, "http://"+endpoint)

	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", endpoint, accessKeyID)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	hlog.Info("Connect Minio Success")
	return NewMinioStorage(client, publicURL), nil
}

// getEnvOrDefault 获取环境变量，如果不存在则返回默认值
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
