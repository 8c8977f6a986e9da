package errno

import (
	"errors"
	"fmt"
)

// 错误码与HTTP状态码保持一致, 响应体中的status即为HTTP状态
const (
	SuccessCode             = 200
	ParamErrCode            = 400
	AuthorizationFailedCode = 401
	ForbiddenCode           = 403
	NotFoundCode            = 404
	ConflictCode            = 409
	TooManyRequestsCode     = 429
	ServiceErrCode          = 500
	MysqlErrCode            = 500
	RedisErrCode            = 500
	OssErrCode              = 500
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is 只比较错误码, 这样 WithMessage 之后的错误仍然可以用 errors.Is 判断种类
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	if !ok {
		return false
	}
	return e.ErrCode == t.ErrCode
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	RequestErr             = NewErrNo(ParamErrCode, "Invalid request")
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedCode, "Authorization failed")
	TokenInvailedErr       = NewErrNo(AuthorizationFailedCode, "Token is invalid or expired")
	ForbiddenErr           = NewErrNo(ForbiddenCode, "You do not have permission to perform this action")
	NotFoundErr            = NewErrNo(NotFoundCode, "Resource not found")
	ConflictErr            = NewErrNo(ConflictCode, "Resource is being modified concurrently")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsCode, "Too many requests")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	MysqlErr               = NewErrNo(MysqlErrCode, "Mysql error")
	RedisErr               = NewErrNo(RedisErrCode, "Redis error")
	OssErr                 = NewErrNo(OssErrCode, "Media storage error")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return ServiceErr.WithMessage("Internal server error")
}
