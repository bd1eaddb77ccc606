package query

import "errors"

// ErrNoQueryService indicates the lookup view has no query service wired.
var ErrNoQueryService = errors.New("no query service configured")
