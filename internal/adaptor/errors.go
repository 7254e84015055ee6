package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the domain's failure taxonomy onto HTTP. All of
// these are expected caller-facing outcomes, logged as warnings; anything
// unrecognized is a real fault.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, entity.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, entity.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, entity.ErrPaymentRequired):
		log.Warn(operation+" failed - payment required",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponsePaymentRequired(w, errMsg)

	case errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid transition",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, entity.ErrCapacityExceeded):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case errors.Is(err, entity.ErrConcurrencyConflict):
		log.Warn(operation+" failed - concurrent modification",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
