package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the closed set of failure categories reported by this module.
// There is intentionally no catch-all kind.
type ErrorKind uint8

const (
	// InvalidInput: caller supplied arguments violate a precondition.
	InvalidInput ErrorKind = iota
	// TransportError: the RPC transport failed to talk to the ledger node.
	TransportError
	// SlotInconsistency: the requested accounts could not be bound to one slot,
	// or the observed slot is below the configured minimum.
	SlotInconsistency
	// MissingAccount: a requested account does not exist on the ledger.
	MissingAccount
	// MalformedAccountData: account bytes exist but fail a structural precondition.
	MalformedAccountData
	// LayoutVersionMismatch: on-chain layout version is incompatible with the decoder.
	LayoutVersionMismatch

	numErrorKinds
)

var errorKindCodes = [numErrorKinds]string{
	InvalidInput:          "INVALID_INPUT",
	TransportError:        "RPC_ERROR",
	SlotInconsistency:     "RPC_SLOT_INCONSISTENCY",
	MissingAccount:        "MISSING_ACCOUNT",
	MalformedAccountData:  "MALFORMED_ACCOUNT_DATA",
	LayoutVersionMismatch: "LAYOUT_VERSION_MISMATCH",
}

// AllErrorKinds returns every ErrorKind in declaration order.
func AllErrorKinds() []ErrorKind {
	kinds := make([]ErrorKind, 0, numErrorKinds)
	for k := ErrorKind(0); k < numErrorKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k ErrorKind) Valid() bool {
	return k < numErrorKinds
}

// String returns the stable audit code of the kind.
func (k ErrorKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
	return errorKindCodes[k]
}

// Error is the only failure type surfaced by the observation client and its ports.
type Error struct {
	Kind    ErrorKind
	Message string

	cause error
}

var _ error = (*Error)(nil)

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds an Error of the given kind which keeps cause reachable through errors.Unwrap.
func WrapError(kind ErrorKind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same kind, so errors.Is(err, NewError(SlotInconsistency, ""))
// can be used to branch on the kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
