package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"

	"github.com/shelfdb/shelf/service"
	"github.com/shelfdb/shelf/store"
)

func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	if i := strings.LastIndex(r.RemoteAddr, ":"); i > 0 {
		return r.RemoteAddr[0:i]
	}

	return r.RemoteAddr
}

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				box.SetError(ctx, fmt.Errorf("panic: %v", r))
				debug.PrintStack()
			}
		}()
		next(ctx)
	}
}

// PrettyErrorInterceptor maps the error taxonomy to status codes: validation
// to 400, absent records/resources to 404, duplicate ids to 409, anything
// else to 500. Error bodies are `{"message": "..."}`.
func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		var validationError *service.ValidationError
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &validationError):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, store.ErrNotFound),
			errors.Is(err, service.ErrResourceNotFound),
			err == box.ErrResourceNotFound:
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, store.ErrExists):
			w.WriteHeader(http.StatusConflict)
		case err == box.ErrMethodNotAllowed:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case errors.As(err, &syntaxError),
			errors.As(err, &typeError),
			errors.Is(err, io.EOF),
			errors.Is(err, io.ErrUnexpectedEOF):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"message": err.Error(),
		})
	}
}
