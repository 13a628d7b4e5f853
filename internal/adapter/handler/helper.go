package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tablevote/tablevote-backend/errors"
	"github.com/tablevote/tablevote-backend/internal/adapter/dto/common"
	usecaseErrors "github.com/tablevote/tablevote-backend/internal/usecase/errors"
)

// parseIDParam parses a UUID path parameter, answering 400 on failure.
// The returned error is non-nil after a response was already written, so
// callers can return it directly; echo skips committed responses.
func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "invalid_id",
			Message: name + " must be a valid UUID",
		})
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// respondUsecaseError maps usecase sentinel errors onto HTTP responses.
// fallback builds the AppError for everything that is not a known
// sentinel, so each operation keeps its own visible failure code.
func respondUsecaseError(c echo.Context, err error, fallback func(error) errors.AppError) error {
	var appErr errors.AppError

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrGroupNotFound):
		appErr = errors.ErrGroupNotFound(c.Param("groupID"))
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		appErr = errors.ErrMeetingNotFound(c.Param("meetingID"))
	case stdErrors.Is(err, usecaseErrors.ErrMemberNotFound):
		appErr = errors.ErrMemberNotFound(c.Param("memberID"))
	case stdErrors.Is(err, usecaseErrors.ErrMemberNotInGroup),
		stdErrors.Is(err, usecaseErrors.ErrMeetingNotInGroup):
		appErr = errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrMeetingAlreadyFinal):
		appErr = errors.ErrMeetingAlreadyFinal(c.Param("meetingID"))
	case stdErrors.Is(err, usecaseErrors.ErrNoMeetingLocation):
		appErr = errors.ErrNoMeetingLocation()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidBudgetBand):
		appErr = errors.ErrInvalidBudgetBand("")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidPlaceID),
		stdErrors.Is(err, usecaseErrors.ErrInvalidDeckIndex),
		stdErrors.Is(err, usecaseErrors.ErrEmptyGroup),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		appErr = errors.ErrInvalidArgument(err.Error())
	default:
		appErr = fallback(err)
	}

	return c.JSON(appErr.HTTPCode, toErrorResponse(appErr))
}

func toErrorResponse(appErr errors.AppError) common.ErrorResponse {
	details := make(map[string]interface{}, len(appErr.Details))
	for k, v := range appErr.Details {
		details[k] = v
	}
	if len(details) == 0 {
		details = nil
	}
	return common.ErrorResponse{
		Error:   appErr.Code.String(),
		Message: appErr.Message,
		Details: details,
		Code:    appErr.Code.String(),
	}
}

// bindAndValidate binds the request body and runs struct validation,
// answering 400 itself on failure.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
		})
	}
	return true, nil
}
