package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown connector or decoder type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrScanInProgress indicates a scan is already running for the source.
	ErrScanInProgress = errors.New("scan in progress")

	// Registry Errors.

	// ErrEmptyCrate indicates a record was keyed by an empty crate name.
	// Registries reject such records outright.
	ErrEmptyCrate = errors.New("empty crate name")

	// ErrDuplicateRecord indicates a record with the same signature already
	// exists under the crate.
	ErrDuplicateRecord = errors.New("duplicate implementor record")

	// ErrEmptySignature indicates a record with no impl signature text.
	ErrEmptySignature = errors.New("empty impl signature")

	// Decoder Errors.

	// ErrUnknownFlavor indicates no decoder recognises the fragment format.
	ErrUnknownFlavor = errors.New("unknown fragment flavor")

	// ErrMalformedFragment indicates a fragment was recognised but could not
	// be decoded. The payload is syntactically broken.
	ErrMalformedFragment = errors.New("malformed fragment")

	// Connector Errors.

	// ErrConnectorValidation indicates connector validation failed.
	// The source is misconfigured or credentials are invalid.
	ErrConnectorValidation = errors.New("connector validation failed")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the connector requires a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")
)
