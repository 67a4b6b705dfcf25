package http

import (
	"errors"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

// respondError maps domain errors onto the JSON error contract:
// 400 validation/capacity, 401 unauthorized, 404 missing rows,
// 500 everything else.
func respondError(c *ginext.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrDecodeFailed),
		errors.Is(err, domain.ErrEncodeFailed),
		errors.Is(err, domain.ErrInvalidChannel):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		zlog.Logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}
