package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/api/dto"
	"github.com/aliskhannn/market-notifier/internal/api/respond"
	"github.com/aliskhannn/market-notifier/internal/model"
	intakesvc "github.com/aliskhannn/market-notifier/internal/service/intake"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/intake/mock.go -package=mocks

type intakeService interface {
	Handle(ctx context.Context, change model.ContentChange) (intakesvc.Result, error)
}

// Handler receives content change events from the domain layer.
type Handler struct {
	service   intakeService
	validator *validator.Validate
}

// NewHandler creates a new intake handler.
func NewHandler(s intakeService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// ContentEvent creates notifications for the subscribers of the changed content.
func (h *Handler) ContentEvent(c *ginext.Context) {
	var req dto.ContentEventRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	res, err := h.service.Handle(c.Request.Context(), req.Change())
	if err != nil {
		switch {
		case errors.Is(err, intakesvc.ErrInvalidChange),
			errors.Is(err, intakesvc.ErrMissingCompany),
			errors.Is(err, intakesvc.ErrMissingIndicator):
			zlog.Logger.Warn().Err(err).Msg("rejected content event")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		case res.Created == 0:
			zlog.Logger.Error().Err(err).Int64("content_id", req.ContentID).Msg("failed to handle content event")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			return
		}

		// Notifications that were stored stay visible; delivery problems show up in the delivery views.
		zlog.Logger.Warn().Err(err).Int64("content_id", req.ContentID).Msg("content event handled with errors")
	}

	respond.Created(c.Writer, res)
}
