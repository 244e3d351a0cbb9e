package secretsource

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies a resolution failure.
type Kind string

const (
	// KindContract marks a caller contract violation, such as resolving
	// through a nil or unconstructed Source.
	KindContract Kind = "contract"
	// KindClient marks a failure to construct or open the Secret Manager
	// client, typically authentication or credential problems.
	KindClient Kind = "client"
	// KindBackend marks an error reported by Secret Manager itself
	// (not found, permission denied, invalid argument, ...).
	KindBackend Kind = "backend"
	// KindCorruption marks a payload whose computed CRC32C does not match
	// the checksum advertised by the service.
	KindCorruption Kind = "corruption"
	// KindUnexpected marks any other failure during fetch or decode.
	KindUnexpected Kind = "unexpected"
)

// ResolveError describes a failed resolution attempt.
//
// Path is the backend path as derived from the caller's reference. Name is
// the canonical resource name reported by the service, populated when the
// service got far enough to tell us (always set for corruption errors, where
// the two may legitimately diverge).
type ResolveError struct {
	Kind    Kind
	Path    string
	Name    string
	Message string
	Err     error
}

func (e *ResolveError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("secretsource: %s: %v", msg, e.Err)
	}
	return "secretsource: " + msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or "" if err is not a ResolveError.
func KindOf(err error) Kind {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsCorruption reports whether err is a checksum-mismatch failure.
func IsCorruption(err error) bool {
	return KindOf(err) == KindCorruption
}

// StatusCode returns the gRPC status code of the backend error wrapped by
// err. It returns codes.OK for nil and codes.Unknown when err carries no
// status, so callers can branch on NotFound, PermissionDenied and friends
// without unwrapping by hand.
func StatusCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	var re *ResolveError
	if errors.As(err, &re) && re.Err != nil {
		err = re.Err
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}
