package utils

import (
	"strconv"
	"strings"

	"VidTube.com/pkg/errno"
)

// ValidHandle 资源ID均由雪花算法生成, 合法的ID一定大于0
func ValidHandle(id int64) bool {
	return id > 0
}

// SameHandle 是全局唯一的ID相等判断, 任一方不合法时返回false
func SameHandle(a, b int64) bool {
	return ValidHandle(a) && ValidHandle(b) && a == b
}

// ParseHandle 解析路径参数中的资源ID
func ParseHandle(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || !ValidHandle(id) {
		return 0, errno.ParamErr.WithMessage("Invalid " + name)
	}
	return id, nil
}
