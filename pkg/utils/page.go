package utils

import "VidTube.com/pkg/constants"

// PageParam 分页参数, 页码从1开始
type PageParam struct {
	PageNum  int64 `json:"page"`
	PageSize int64 `json:"limit"`
}

func NewPageParam(pageNum, pageSize int64) PageParam {
	if pageNum < 1 {
		pageNum = constants.DefaultPage
	}
	if pageNum > constants.MaxPage {
		pageNum = constants.MaxPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultLimit
	}
	if pageSize > constants.MaxLimit {
		pageSize = constants.MaxLimit
	}
	return PageParam{PageNum: pageNum, PageSize: pageSize}
}

func (p PageParam) Offset() int {
	return int(p.PageNum-1) * int(p.PageSize)
}

func (p PageParam) Limit() int {
	return int(p.PageSize)
}
