package middleware

import (
	"context"
	"sync"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	sentinelconf "github.com/alibaba/sentinel-golang/core/config"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const apiResource = "vidtube-api"

var (
	sentinelOnce sync.Once
	sentinelErr  error
)

// InitSentinel 对整个API做QPS限流, qps<=0 时不加载规则
func InitSentinel(qps float64) error {
	sentinelOnce.Do(func() {
		conf := sentinelconf.NewDefaultConfig()
		// 不写 metric 日志文件
		conf.Sentinel.Log.Metric.FlushIntervalSec = 0
		sentinelErr = sentinel.InitWithConfig(conf)
	})
	if sentinelErr != nil {
		return sentinelErr
	}
	if qps <= 0 {
		_, err := flow.LoadRules(nil)
		return err
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               apiResource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return err
}

// Sentinel 被限流的请求直接返回429
func Sentinel() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(apiResource,
			sentinel.WithResourceType(base.ResTypeWeb),
			sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "request %s blocked: %v", c.FullPath(), blockErr.BlockMsg())
			utils.SendResponse(c, errno.TooManyRequestsErr, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
