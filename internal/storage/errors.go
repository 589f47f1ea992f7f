package storage

import "errors"

var (
	ErrWorkspaceInit = errors.New("workspace initialization failed")
)
