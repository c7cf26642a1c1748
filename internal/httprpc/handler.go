// Package httprpc routes typed request/response handlers over net/http.
package httprpc

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Handler is a typed endpoint implementation.
type Handler[Req any, Res any] func(ctx context.Context, request Req) (Res, error)

// HandlerMiddleware wraps a typed handler. Registered middlewares run in the order given.
type HandlerMiddleware[Req any, Res any] func(next Handler[Req, Res]) Handler[Req, Res]

func chainHandler[Req any, Res any](h Handler[Req, Res], mws []HandlerMiddleware[Req, Res]) Handler[Req, Res] {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}

func adaptHandler[Req any, Res any](codec Codec[Req, Res], handler Handler[Req, Res]) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := codec.Decode(r)
		if err != nil {
			if encodeErr := codec.EncodeError(w, err); encodeErr != nil {
				zap.L().Error("failed to encode error response", zap.Error(encodeErr))
			}
			return
		}

		res, err := handler(r.Context(), req)
		if err != nil {
			if encodeErr := codec.EncodeError(w, err); encodeErr != nil {
				zap.L().Error("failed to encode error response", zap.Error(encodeErr))
			}
			return
		}

		if err := codec.Encode(w, res); err != nil {
			zap.L().Error("failed to encode response", zap.Error(err))
		}
	})
}
