package api

import (
	"context"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelf/service"
)

const contextServiceKey = "f1a2e9be-75b4-41a8-9f0c-3c8e6d2b51da"

func SetService(ctx context.Context, s *service.Service) context.Context {
	return context.WithValue(ctx, contextServiceKey, s)
}

func GetService(ctx context.Context) *service.Service {
	return ctx.Value(contextServiceKey).(*service.Service)
}

func injectService(s *service.Service) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(SetService(ctx, s))
		}
	}
}
