package command

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-inventory/core"
)

// missingServiceError reports a handler built without a MutatingService.
func missingServiceError(messageType string) error {
	return goerrors.New("command: "+messageType+" handler has no inventory service", goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.InventoryErrorInternal).
		WithMetadata(map[string]any{"message_type": messageType})
}

func invalidFieldError(field string, value any, message string) error {
	return goerrors.NewValidation("command: invalid "+field, goerrors.FieldError{
		Field:   field,
		Message: message,
		Value:   value,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.InventoryErrorBadInput)
}
