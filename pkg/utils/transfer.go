package utils

import (
	"encoding/json"
	"strconv"
)

// Transfer 将jwt claims中的用户ID转换为int64, 无法识别时返回-1
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if id, err := v.Int64(); err == nil {
			return id
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			return id
		}
	}
	return -1
}
