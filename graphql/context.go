package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"shopzone.GO/core/i18n"
	"shopzone.GO/service/catalog"
	"shopzone.GO/service/checkout"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const (
	ctxKeyLanguage contextKey = "language"
	ctxKeyEnv      contextKey = "env"
)

// Language is resolved from: Language header > __lang query param >
// JSON variables.__lang.
const (
	HeaderLanguage     = "Language"
	QueryParamLanguage = "__lang"
	VarLanguage        = "__lang"
)

// LanguageFromContext returns the UI language for the current request.
func LanguageFromContext(ctx context.Context) i18n.Language {
	if v, ok := ctx.Value(ctxKeyLanguage).(i18n.Language); ok {
		return v
	}
	return i18n.Default
}

func WithLanguage(ctx context.Context, lang i18n.Language) context.Context {
	return context.WithValue(ctx, ctxKeyLanguage, lang)
}

// GetLanguage extracts the language from header or query param.
// Unsupported values fall back to the default.
func GetLanguage(r *http.Request) i18n.Language {
	if h := r.Header.Get(HeaderLanguage); h != "" {
		lang, _ := i18n.Parse(h)
		return lang
	}
	if q := r.URL.Query().Get(QueryParamLanguage); q != "" {
		lang, _ := i18n.Parse(q)
		return lang
	}
	return i18n.Default
}

// ParseLanguageFromVariables reads variables.__lang from a JSON body.
func ParseLanguageFromVariables(body []byte) (i18n.Language, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return i18n.Default, false
	}
	if v, ok := payload.Variables[VarLanguage].(string); ok {
		return i18n.Parse(v)
	}
	return i18n.Default, false
}

// Env is what extension resolvers can reach.
type Env struct {
	Catalog *catalog.Service
	Rates   checkout.Rates
}

func WithEnv(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, ctxKeyEnv, env)
}

// EnvFromContext returns the Env set by the query resolver.
func EnvFromContext(ctx context.Context) (*Env, bool) {
	env, ok := ctx.Value(ctxKeyEnv).(*Env)
	return env, ok && env != nil
}
