package sequence

import (
	"errors"

	apperrors "github.com/agbru/fibseq/internal/errors"
)

// ErrInvalidRequest classifies a term count that is unparsable or negative.
// Transports map it to a client error.
var ErrInvalidRequest = errors.New("invalid request")

func invalidCount(message string) error {
	return apperrors.ValidationError{Field: "count", Message: message, Cause: ErrInvalidRequest}
}
