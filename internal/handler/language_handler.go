package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilllab/internal/locale"
)

type languageRequest struct {
	Lang string `json:"lang"`
}

// SetLanguage 保存访客显式选择的语言。
func (a *API) SetLanguage(c *gin.Context) {
	var req languageRequest
	if !bindJSON(c, &req, "invalid request body") {
		return
	}

	loc := a.requestLocale(c)
	if err := loc.resolver.SetLanguage(req.Lang); err != nil {
		if errors.Is(err, locale.ErrUnsupportedLanguage) {
			respondError(c, http.StatusBadRequest, "unsupported language")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to change language")
		return
	}

	pref := locale.PreferenceForLanguage(loc.resolver.Context().Current())
	loc.preference = pref
	c.Header("Content-Language", pref.HTMLLang)
	c.JSON(http.StatusOK, gin.H{
		"language": pref.Language,
		"locale":   pref.Locale,
	})
}
