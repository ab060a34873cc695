package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/filmlog/internal/common"
	"github.com/dmitrijs2005/filmlog/internal/logging"
	"github.com/dmitrijs2005/filmlog/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// SessionChecker reports whether a token still has a live session record.
type SessionChecker interface {
	SessionActive(ctx context.Context, token string) (bool, error)
}

// Detokenize unwraps bodies of the form {"payload": "<signed token>"} into
// the verified claims. Any other body, including one whose payload is null,
// false, "" or 0, is passed on byte-for-byte.
func Detokenize(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
			_ = r.Body.Close()
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
					return
				}
				writeError(w, http.StatusBadRequest, "unreadable request body")
				return
			}

			// Non-object bodies leave fields nil.
			var fields map[string]json.RawMessage
			_ = json.Unmarshal(raw, &fields)
			payload, wrapped := fields[common.PayloadField]
			if !wrapped || emptyPayload(payload) {
				setBody(r, raw)
				next.ServeHTTP(w, r)
				return
			}

			var token string
			if err := json.Unmarshal(payload, &token); err != nil {
				writeError(w, http.StatusBadRequest, "malformed payload")
				return
			}
			claims, err := codec.Verify(token)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid payload")
				return
			}

			body, err := json.Marshal(claims)
			if err != nil {
				writeError(w, http.StatusBadRequest, "malformed payload")
				return
			}
			setBody(r, body)
			r.Header.Set("Content-Type", "application/json")
			next.ServeHTTP(w, r)
		})
	}
}

// emptyPayload reports whether a payload field holds null, false, "" or 0.
// Such bodies are not wrapped.
func emptyPayload(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", `""`:
		return true
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil && n == 0
}

func setBody(r *http.Request, b []byte) {
	r.Body = io.NopCloser(bytes.NewReader(b))
	r.ContentLength = int64(len(b))
	r.Header.Set("Content-Length", strconv.Itoa(len(b)))
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], common.BearerScheme) {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}

// Authenticate verifies the bearer token and stores the identity in the
// request context. sessions may be nil, which skips the revocation check.
func Authenticate(codec *auth.TokenCodec, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}

			var id auth.Identity
			if err := codec.VerifyInto(token, &id); err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, "token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if id.ID == "" {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			if sessions != nil {
				active, err := sessions.SessionActive(r.Context(), token)
				if err != nil {
					writeError(w, http.StatusInternalServerError, "internal error")
					return
				}
				if !active {
					writeError(w, http.StatusUnauthorized, common.ErrSessionRevoked.Error())
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// Authorize lets the request through only when the authenticated identity
// owns the resource named by the path parameter param.
func Authorize(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.IdentityFromContext(r.Context())
			owner := chi.URLParam(r, param)
			if !ok || owner == "" || id.ID != owner {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger writes one access log line per request.
func RequestLogger(l logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			l.Info(r.Context(), "request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
