package handlers

import (
	"os"
	"path/filepath"

	"VidTube.com/config"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

type ListVideoParam struct {
	Page     int64  `query:"page"`
	Limit    int64  `query:"limit"`
	Query    string `query:"query"`
	SortBy   string `query:"sort_by"`
	SortType string `query:"sort_type"`
	UserId   int64  `query:"user_id"`
}

type VideoForm struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

type PlaylistParam struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
}

type ChannelParam struct {
	ChannelId int64 `query:"channel_id"`
	Page      int64 `query:"page"`
	Limit     int64 `query:"limit"`
}

func bindPage(c *app.RequestContext) (utils.PageParam, error) {
	var p PageParam
	if err := c.BindQuery(&p); err != nil {
		hlog.Info(err)
		return utils.PageParam{}, errno.ParamErr.WithMessage("page and limit must be integers")
	}
	return utils.NewPageParam(p.Page, p.Limit), nil
}

// saveUpload 把multipart文件落到上传目录, 字段不存在时返回空路径
func saveUpload(c *app.RequestContext, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	dir := config.ConfigInfo.Server.UploadDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		hlog.Errorf("create upload dir %s failed: %v", dir, err)
		return "", errno.ServiceErr.WithMessage("Failed to save upload")
	}
	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(fh.Filename))
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		hlog.Errorf("save upload %s failed: %v", field, err)
		return "", errno.ServiceErr.WithMessage("Failed to save upload")
	}
	return dst, nil
}

func removeUploads(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			hlog.Warnf("remove upload %s failed: %v", p, err)
		}
	}
}
