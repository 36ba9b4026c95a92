package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	InventoryErrorBadInput           = "INVENTORY_BAD_INPUT"
	InventoryErrorNotFound           = "INVENTORY_NOT_FOUND"
	InventoryErrorAlreadyRegistered  = "INVENTORY_ALREADY_REGISTERED"
	InventoryErrorIncompleteResult   = "INVENTORY_INCOMPLETE_RESULT"
	InventoryErrorStructureFinalized = "INVENTORY_STRUCTURE_FINALIZED"
	InventoryErrorBuilderConsumed    = "INVENTORY_BUILDER_CONSUMED"
	InventoryErrorContractViolation  = "INVENTORY_CONTRACT_VIOLATION"
	InventoryErrorNothingToRevert    = "INVENTORY_NOTHING_TO_REVERT"
	InventoryErrorInternal           = "INVENTORY_INTERNAL_ERROR"
)

var (
	ErrInventoryNotFound          = errors.New("core: inventory not registered")
	ErrInventoryAlreadyRegistered = errors.New("core: inventory already registered")
)

func inventoryErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureInventoryErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrInventoryNotFound):
		return wrapInventoryError(err, goerrors.CategoryNotFound, InventoryErrorNotFound, nil)
	case errors.Is(err, ErrInventoryAlreadyRegistered):
		return wrapInventoryError(err, goerrors.CategoryConflict, InventoryErrorAlreadyRegistered, nil)
	case errors.Is(err, ErrNothingToRevert):
		return wrapInventoryError(err, goerrors.CategoryConflict, InventoryErrorNothingToRevert, nil)
	case errors.Is(err, ErrInvalidItem):
		return wrapInventoryError(err, goerrors.CategoryBadInput, InventoryErrorContractViolation, nil)
	case errors.Is(err, ErrLensInvariant):
		return wrapInventoryError(err, goerrors.CategoryInternal, InventoryErrorInternal, nil)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") {
		return wrapInventoryError(err, goerrors.CategoryBadInput, InventoryErrorBadInput, nil)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureInventoryErrorEnvelope(mapped)
}

func wrapInventoryError(source error, category goerrors.Category, textCode string, metadata map[string]any) *goerrors.Error {
	err := goerrors.Wrap(source, category, source.Error()).
		WithCode(inventoryHTTPStatus(category)).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func newInventoryError(message string, category goerrors.Category, textCode string, metadata map[string]any) *goerrors.Error {
	err := goerrors.New(message, category).
		WithCode(inventoryHTTPStatus(category)).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func ensureInventoryErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = inventoryHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultInventoryTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultInventoryTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return InventoryErrorBadInput
	case goerrors.CategoryNotFound:
		return InventoryErrorNotFound
	case goerrors.CategoryConflict:
		return InventoryErrorAlreadyRegistered
	default:
		return InventoryErrorInternal
	}
}

func inventoryHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// contractViolation is the cause attached to error-typed transaction results.
func contractViolation(source error, metadata map[string]any) error {
	return wrapInventoryError(source, goerrors.CategoryBadInput, InventoryErrorContractViolation, metadata)
}

// The helpers below build panic values for programmer errors.

func incompleteResultError(resultType ResultType) *goerrors.Error {
	return newInventoryError(
		fmt.Sprintf("core: transaction result built with invalid type %q", resultType),
		goerrors.CategoryInternal,
		InventoryErrorIncompleteResult,
		map[string]any{"result_type": string(resultType)},
	)
}

func structureFinalizedError(operation string) *goerrors.Error {
	return newInventoryError(
		"core: inventory structure already finalized",
		goerrors.CategoryInternal,
		InventoryErrorStructureFinalized,
		map[string]any{"operation": operation},
	)
}

func builderConsumedError(operation string) *goerrors.Error {
	return newInventoryError(
		"core: inventory builder consumed by build, reset it before reuse",
		goerrors.CategoryInternal,
		InventoryErrorBuilderConsumed,
		map[string]any{"operation": operation},
	)
}

func builderInputError(operation string, metadata map[string]any) *goerrors.Error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["operation"] = operation
	return newInventoryError(
		fmt.Sprintf("core: invalid builder input for %s", operation),
		goerrors.CategoryBadInput,
		InventoryErrorBadInput,
		metadata,
	)
}

func lensInvariantError(source error) *goerrors.Error {
	return wrapInventoryError(source, goerrors.CategoryInternal, InventoryErrorInternal, nil)
}
