package http

import (
	"net/http"

	"bankledger/internal/domain/siteconfig"

	"github.com/labstack/echo/v4"
)

// AdminHandler is the administrative collaborator surface that flips the
// bankrupt gate. It talks to the repository directly; the gate is plain
// configuration, not a ledger mutation.
type AdminHandler struct {
	repo  siteconfig.Repository
	cache *siteconfig.CachedReader
}

func NewAdminHandler(repo siteconfig.Repository, cache *siteconfig.CachedReader) *AdminHandler {
	return &AdminHandler{repo: repo, cache: cache}
}

type siteConfigReq struct {
	IsBankrupt    bool   `json:"is_bankrupt"`
	StatusMessage string `json:"status_message" validate:"max=512"`
}

func (h *AdminHandler) GetSiteConfig(c echo.Context) error {
	cfg, err := h.repo.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "site config unavailable"})
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *AdminHandler) SetSiteConfig(c echo.Context) error {
	var req siteConfigReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.repo.SetBankrupt(c.Request().Context(), req.IsBankrupt, req.StatusMessage); err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not update site config"})
	}
	if h.cache != nil {
		h.cache.Invalidate()
	}
	cfg, err := h.repo.Get(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "site config unavailable"})
	}
	return c.JSON(http.StatusOK, cfg)
}
