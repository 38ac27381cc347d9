package repository

import "errors"

// Store failures. The underlying driver error is logged by the repository, not returned.
var (
	ErrFailedToInsert = errors.New("task store: insert failed")
	ErrFailedToGet    = errors.New("task store: get failed")
	ErrFailedToList   = errors.New("task store: list failed")
	ErrFailedToUpdate = errors.New("task store: update failed")
	ErrFailedToDelete = errors.New("task store: delete failed")
)
