// Package i18n provides locale-aware lookup of user-facing error messages.
//
// Messages are addressed by stable keys (e.g. VALIDATION_ERRORS.INVALID_TASK_ID)
// so that the validation and handler layers never embed display strings.
// The locale is negotiated from the request's Accept-Language header using
// golang.org/x/text language matching; English is the fallback for both
// unsupported locales and unknown keys.
package i18n

import (
	"golang.org/x/text/language"
)

// Message keys shared by validators and handlers. The values mirror the
// key table consumed by API clients, so they are part of the public
// contract and must stay stable.
const (
	KeyValidationFailed = "DEFAULT_ERRORS.VALIDATION_FAILED"
	KeyInternalError    = "DEFAULT_ERRORS.INTERNAL_SERVER_ERROR"

	KeyInvalidTitle   = "VALIDATION_ERRORS.INVALID_TITLE_VALUE"
	KeyDuplicateTitle = "VALIDATION_ERRORS.TITLE_ALREADY_EXISTS"
	KeyInvalidTaskID  = "VALIDATION_ERRORS.INVALID_TASK_ID"
	KeyTaskNotExist   = "VALIDATION_ERRORS.TASK_NOT_EXIST"
)

// supported lists the locales with a full catalog. Order matters: the
// first entry is the matcher's fallback.
var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// catalogs maps a supported locale to its key table.
var catalogs = map[language.Tag]map[string]string{
	language.English: {
		KeyValidationFailed: "Validation failed",
		KeyInternalError:    "Internal server error",
		KeyInvalidTitle:     "Please enter a valid title",
		KeyDuplicateTitle:   "A task with this title already exists",
		KeyInvalidTaskID:    "The task id is not valid",
		KeyTaskNotExist:     "task not found",
	},
	language.Spanish: {
		KeyValidationFailed: "Error de validación",
		KeyInternalError:    "Error interno del servidor",
		KeyInvalidTitle:     "Introduzca un título válido",
		KeyDuplicateTitle:   "Ya existe una tarea con este título",
		KeyInvalidTaskID:    "El identificador de la tarea no es válido",
		KeyTaskNotExist:     "la tarea no existe",
	},
}

// Localizer resolves message keys for one negotiated locale. The zero
// value resolves to English.
type Localizer struct {
	tag language.Tag
}

// ForTag returns a Localizer for the closest supported locale to tag.
func ForTag(tag language.Tag) Localizer {
	_, idx, _ := matcher.Match(tag)
	return Localizer{tag: supported[idx]}
}

// FromAcceptLanguage negotiates a Localizer from an Accept-Language header
// value. An empty or malformed header yields the English fallback.
func FromAcceptLanguage(header string) Localizer {
	if header == "" {
		return Localizer{tag: language.English}
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Localizer{tag: language.English}
	}
	_, idx, _ := matcher.Match(tags...)
	return Localizer{tag: supported[idx]}
}

// Tag returns the locale this Localizer resolved to.
func (l Localizer) Tag() language.Tag {
	if l.tag == (language.Tag{}) {
		return language.English
	}
	return l.tag
}

// Message returns the localized text for key. Missing keys fall back to
// the English catalog, and finally to the key itself so that a typo in a
// message key never produces an empty user-facing string.
func (l Localizer) Message(key string) string {
	if cat, ok := catalogs[l.Tag()]; ok {
		if msg, ok := cat[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[language.English][key]; ok {
		return msg
	}
	return key
}
