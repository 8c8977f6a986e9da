package utils

import (
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

// Response 所有接口统一的响应格式, HTTP状态码与status一致
type Response struct {
	Status  int64       `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(int(Err.ErrCode), Response{
		Status:  Err.ErrCode,
		Data:    data,
		Message: Err.ErrMsg,
	})
}
