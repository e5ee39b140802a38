package tree

import "errors"

var (
	// ErrIntegrity is returned when a node or leaf fails a structural check
	// while being materialized from an identifier.
	ErrIntegrity = errors.New("tree: integrity check failed")
)
