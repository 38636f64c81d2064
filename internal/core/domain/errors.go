package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into the gateway's canonical error categories.
// Chain adapters assign the kind at the boundary where the upstream error
// shape is still known; everything above dispatches on the kind alone.
type Kind int

const (
	// KindUnknown covers failures with no recognized shape. Surfaced as-is,
	// never swallowed.
	KindUnknown Kind = iota

	// KindNetwork marks an unreachable or timed-out upstream. Retryable by
	// the caller; the gateway itself never retries.
	KindNetwork

	// KindRecoverableMiss is the primary node's "not found within my
	// retention window" signal. Resolved internally by the poll fallback,
	// never returned to callers.
	KindRecoverableMiss

	// KindHoldingNotFound means the account has no holding of an asset.
	// Resolved internally as a zero balance.
	KindHoldingNotFound

	// KindUnknownAsset means the requested symbol is absent from the
	// network's catalog. A caller input error.
	KindUnknownAsset
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRecoverableMiss:
		return "recoverable_miss"
	case KindHoldingNotFound:
		return "holding_not_found"
	case KindUnknownAsset:
		return "unknown_asset"
	default:
		return "unknown"
	}
}

// Error tags an upstream failure with its kind and the operation that hit it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with a kind and operation name.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a tagged error from a format string.
func Errorf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the kind from an error chain. Untagged errors are
// KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsNetwork reports whether err is a transport-level upstream failure.
func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// IsRecoverableMiss reports whether err is the node's retention-window miss.
func IsRecoverableMiss(err error) bool { return KindOf(err) == KindRecoverableMiss }

// IsHoldingNotFound reports whether err means the account never held the asset.
func IsHoldingNotFound(err error) bool { return KindOf(err) == KindHoldingNotFound }

// IsUnknownAsset reports whether err is an unrecognized-symbol input error.
func IsUnknownAsset(err error) bool { return KindOf(err) == KindUnknownAsset }
