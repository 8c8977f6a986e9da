package oss

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// UploadResult PublicId 用于之后删除对象, 格式为 bucket/object
type UploadResult struct {
	Url      string  `json:"url"`
	PublicId string  `json:"public_id"`
	Duration float64 `json:"duration"`
}

// MediaStorage 媒体文件存储
type MediaStorage interface {
	Upload(ctx context.Context, localFile string) (*UploadResult, error)
	Delete(ctx context.Context, publicId string) bool
}

type MinioStorage struct {
	client    *minio.Client
	publicURL string
	buckets   sync.Map
}

var _ MediaStorage = (*MinioStorage)(nil)

func NewMinioStorage(client *minio.Client, publicURL string) *MinioStorage {
	return &MinioStorage{client: client, publicURL: strings.TrimRight(publicURL, "/")}
}

// ensureBucket 检查存储桶是否存在，不存在则创建
func (s *MinioStorage) ensureBucket(ctx context.Context, bucketName string) error {
	if _, ok := s.buckets.Load(bucketName); ok {
		return nil
	}
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: constants.MinioLocation})
		if err != nil {
			return fmt.Errorf("create bucket error: %w", err)
		}
	}
	s.buckets.Store(bucketName, struct{}{})
	return nil
}

// Upload 视频上传到 video 桶并探测时长, 其余文件上传到 picture 桶
func (s *MinioStorage) Upload(ctx context.Context, localFile string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(localFile))
	contentType := ContentType(ext)
	bucketName := constants.PictureBucket
	if strings.HasPrefix(contentType, "video/") {
		bucketName = constants.VideoBucket
	}
	if err := s.ensureBucket(ctx, bucketName); err != nil {
		return nil, err
	}

	objectName := uuid.New().String() + ext
	if _, err := s.client.FPutObject(ctx, bucketName, objectName, localFile, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, errors.WithMessage(err, "upload to minio failed")
	}

	result := &UploadResult{
		Url:      fmt.Sprintf("%s/%s/%s", s.publicURL, bucketName, objectName),
		PublicId: bucketName + "/" + objectName,
	}
	if bucketName == constants.VideoBucket {
		d, err := utils.ProbeDuration(localFile)
		if err != nil {
			hlog.CtxWarnf(ctx, "probe duration of %s failed: %v", localFile, err)
		}
		result.Duration = d
	}
	return result, nil
}

// Delete 删除失败只返回false, 由调用方决定如何处理
func (s *MinioStorage) Delete(ctx context.Context, publicId string) bool {
	bucketName, objectName, ok := SplitPublicId(publicId)
	if !ok {
		hlog.CtxWarnf(ctx, "invalid media public id %q", publicId)
		return false
	}
	if err := s.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		hlog.CtxErrorf(ctx, "Failed to delete %s: %v", publicId, err)
		return false
	}
	return true
}

// 标准库的内置类型表不包含常见视频格式
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".m4v":  "video/x-m4v",
}

func ContentType(ext string) string {
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func SplitPublicId(publicId string) (bucket, object string, ok bool) {
	bucket, object, ok = strings.Cut(publicId, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
