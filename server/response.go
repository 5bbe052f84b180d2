package server

import (
	"errors"

	"github.com/d-gangz/mcp-template/protocol"
)

// responseForError maps a per-request error to a correlated error Response.
// Every recoverable error kind in the taxonomy ends up here; nothing is
// dropped, so the caller always receives a reply.
func responseForError(id interface{}, err error) *protocol.Response {
	var unknownOp *protocol.UnknownOperationError
	if errors.As(err, &unknownOp) {
		return protocol.NewErrorResponse(id, protocol.KindUnknownOperation, unknownOp.Error(), nil)
	}

	var validation *protocol.ValidationError
	if errors.As(err, &validation) {
		return protocol.NewErrorResponse(id, protocol.KindValidationError,
			"params failed schema validation", validation.Violations)
	}

	var handlerErr *protocol.HandlerError
	if errors.As(err, &handlerErr) {
		return protocol.NewErrorResponse(id, protocol.KindHandlerError, handlerErr.Error(), nil)
	}

	return protocol.NewErrorResponse(id, protocol.KindHandlerError, err.Error(), nil)
}
