package handlers

import (
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type ContentParam struct {
	Content string `json:"content" form:"content"`
}

type PageParam struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

func bindPage(c *app.RequestContext) (utils.PageParam, error) {
	var p PageParam
	if err := c.BindQuery(&p); err != nil {
		hlog.Info(err)
		return utils.PageParam{}, errno.ParamErr.WithMessage("page and limit must be integers")
	}
	return utils.NewPageParam(p.Page, p.Limit), nil
}

func bindContent(c *app.RequestContext) (string, error) {
	var p ContentParam
	if err := c.Bind(&p); err != nil {
		hlog.Info(err)
		return "", errno.ParamErr.WithMessage("Invalid request body")
	}
	return p.Content, nil
}
