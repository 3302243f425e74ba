package errors

import "errors"

var (
	ErrRecordNotFound    = errors.New("record with provided key was not found")
	ErrStoreRecordFailed = errors.New("store record failed")
	ErrEmptyRecord       = errors.New("record text is empty")
	ErrInternal          = errors.New("internal error")
)
