package utils

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration 通过ffprobe读取媒体文件时长(秒)
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to probe media file")
	}
	return ParseProbeDuration(out)
}

// ParseProbeDuration 解析ffprobe输出中的 format.duration, 图片等没有时长的文件返回0
func ParseProbeDuration(probe string) (float64, error) {
	if !gjson.Valid(probe) {
		return 0, errors.New("invalid ffprobe output")
	}
	raw := gjson.Get(probe, "format.duration")
	if !raw.Exists() {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil {
		return 0, errors.WithMessage(err, "Failed to parse media duration")
	}
	return d, nil
}
