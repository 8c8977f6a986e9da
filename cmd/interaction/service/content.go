package service

import (
	"strings"
	"unicode/utf8"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
)

// normalizeContent 去掉首尾空白后不能为空, 也不能超过最大长度
func normalizeContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", errno.ParamErr.WithMessage("Content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxContentLength {
		return "", errno.ParamErr.WithMessage("Content is too long")
	}
	return content, nil
}
