package query

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-inventory/core"
)

func missingReaderError(messageType string) error {
	return goerrors.New("query: "+messageType+" handler has no inventory reader", goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.InventoryErrorInternal).
		WithMetadata(map[string]any{"message_type": messageType})
}

func invalidFieldError(field string, value any, message string) error {
	return goerrors.NewValidation("query: invalid "+field, goerrors.FieldError{
		Field:   field,
		Message: message,
		Value:   value,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.InventoryErrorBadInput)
}
