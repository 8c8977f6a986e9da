package middleware

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

// Tracing 每个请求一个server span, 下游的gorm调用通过ctx挂在这个span下
func Tracing() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		tracer := opentracing.GlobalTracer()
		carrier := opentracing.HTTPHeadersCarrier(http.Header{})
		c.Request.Header.VisitAll(func(k, v []byte) {
			carrier.Set(string(k), string(v))
		})
		parent, _ := tracer.Extract(opentracing.HTTPHeaders, carrier)

		operation := c.FullPath()
		if operation == "" {
			operation = string(c.Request.URI().Path())
		}
		span := tracer.StartSpan(string(c.Method())+" "+operation, ext.RPCServerOption(parent))
		ext.HTTPMethod.Set(span, string(c.Method()))
		ext.HTTPUrl.Set(span, string(c.Request.URI().Path()))
		defer span.Finish()

		c.Next(opentracing.ContextWithSpan(ctx, span))

		status := c.Response.StatusCode()
		ext.HTTPStatusCode.Set(span, uint16(status))
		if status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
	}
}
