package jaeger

import (
	"io"

	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger 注册全局tracer, 未配置agent地址时使用 NoopTracer
func InitJaeger(service string) (opentracing.Tracer, io.Closer) {
	if config.ConfigInfo.Jaeger.AgentAddr == "" {
		hlog.Warn("jaeger agent not configured, tracing disabled")
		tracer := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(tracer)
		return tracer, nopCloser{}
	}
	cfg := jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeProbabilistic,
			Param: config.ConfigInfo.Jaeger.SampleRate,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: config.ConfigInfo.Jaeger.AgentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerclient.StdLogger))
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		tracer := opentracing.NoopTracer{}
		opentracing.SetGlobalTracer(tracer)
		return tracer, nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("jaeger tracer reporting to %s", config.ConfigInfo.Jaeger.AgentAddr)
	return tracer, closer
}
