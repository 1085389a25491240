// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides Locale, which negotiates the response language once per
// request from the Accept-Language header and stashes a request-scoped
// i18n.Localizer in the Gin context. Handlers resolve every user-facing
// message through that Localizer, so localization stays a transport concern
// and never leaks into services or repositories.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-todo-backend/internal/i18n"
)

// ctxKeyLocalizer is the Gin context key under which the Localizer is stored.
const ctxKeyLocalizer = "localizer"

// Locale returns a middleware that negotiates the request locale from
// Accept-Language, falling back to defaultLocale (and ultimately English)
// when the header is missing or unsupported. It also sets Content-Language
// on the response so clients know which catalog was used.
func Locale(defaultLocale string) gin.HandlerFunc {
	fallback := i18n.FromAcceptLanguage(defaultLocale)
	return func(c *gin.Context) {
		loc := fallback
		if al := c.GetHeader("Accept-Language"); al != "" {
			loc = i18n.FromAcceptLanguage(al)
		}
		c.Set(ctxKeyLocalizer, loc)
		c.Header("Content-Language", loc.Tag().String())
		c.Next()
	}
}

// LocalizerFrom returns the request-scoped Localizer attached by Locale().
// When the middleware did not run (e.g., bare handlers in tests), the
// English fallback is returned so callers never need a nil check.
func LocalizerFrom(c *gin.Context) i18n.Localizer {
	if v, ok := c.Get(ctxKeyLocalizer); ok {
		if loc, ok := v.(i18n.Localizer); ok {
			return loc
		}
	}
	return i18n.Localizer{}
}
