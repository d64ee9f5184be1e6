package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
	"go.opentelemetry.io/otel"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
)

type scopeContextKey struct{ name string }

var scopeCtxKey = &scopeContextKey{"scopes"}

var tracer = otel.Tracer("ice-alert-backend/authz")

type Scope string

const (
	ScopeRead  Scope = "read"
	ScopeWrite Scope = "write"
)

type Enticator interface {
	RequireAccess(scopes ...Scope) func(http.Handler) http.Handler
}

type impl struct {
	query rego.PreparedEvalQuery
}

// NewAuthenticator prepares the authz policy for evaluation. A nil policies
// reader yields an authenticator that lets everything through, for
// deployments where an upstream gateway handles auth.
func NewAuthenticator(ctx context.Context, policies io.Reader) (Enticator, error) {
	if policies == nil {
		return &passthrough{}, nil
	}

	module, err := io.ReadAll(policies)
	if err != nil {
		return nil, fmt.Errorf("unable to read authz policies: %s", err.Error())
	}

	query, err := rego.New(
		rego.Query("x = data.icealert.authz.allow"),
		rego.Module("icealert.rego", string(module)),
	).PrepareForEval(ctx)

	if err != nil {
		return nil, err
	}

	return &impl{query: query}, nil
}

type passthrough struct{}

func (p *passthrough) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

func (a *impl) RequireAccess(scopes ...Scope) func(http.Handler) http.Handler {

	requiredScopes := make([]string, 0, len(scopes))
	for _, s := range scopes {
		requiredScopes = append(requiredScopes, string(s))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error

			logger := logging.GetFromContext(r.Context())

			_, span := tracer.Start(r.Context(), "check-auth")
			defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

			token := r.Header.Get("Authorization")

			if token == "" || !strings.HasPrefix(token, "Bearer ") {
				err = errors.New("authorization header missing")
				logger.Info(err.Error())
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			input := map[string]any{
				"token":  token[7:],
				"scopes": requiredScopes,
			}

			results, err := a.query.Eval(r.Context(), rego.EvalInput(input))
			if err != nil {
				logger.Error("opa eval failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if len(results) == 0 {
				err = errors.New("opa query could not be satisfied")
				logger.Error("auth failed", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			binding := results[0].Bindings["x"]

			// a failed authz evaluates to a single bool
			allowed, ok := binding.(bool)
			if ok && !allowed {
				err = errors.New("authorization failed")
				logger.Warn(err.Error())
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			result, ok := binding.(map[string]any)
			if !ok {
				err = errors.New("unexpected result type")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			anyScopes, ok := result["scopes"].([]any)
			if !ok {
				err = errors.New("bad response from authz policy engine")
				logger.Error("opa error", "err", err.Error())
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			granted := make([]Scope, 0, len(anyScopes))
			for _, s := range anyScopes {
				scope, ok := s.(string)
				if !ok {
					logger.Error("rego response type error")
					http.Error(w, "rego error", http.StatusInternalServerError)
					return
				}
				granted = append(granted, Scope(scope))
			}

			for _, required := range scopes {
				found := false
				for _, g := range granted {
					if g == required {
						found = true
						break
					}
				}
				if !found {
					err = errors.New("authorization failed")
					logger.Warn(err.Error(), "scope", string(required))
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithGrantedScopes(r.Context(), granted)))
		})
	}
}

func WithGrantedScopes(ctx context.Context, scopes []Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey, scopes)
}

// GetGrantedScopesFromContext returns the scopes the authz policy granted the
// current request, or nil when the request was not authenticated.
func GetGrantedScopesFromContext(ctx context.Context) []Scope {
	scopes, ok := ctx.Value(scopeCtxKey).([]Scope)
	if !ok {
		return nil
	}
	return scopes
}
