package domain

import "errors"

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrModuleNotFound    = errors.New("module not found")
	ErrVideoNotFound     = errors.New("video not found")
	ErrInvalidTier       = errors.New("invalid time commitment")
	ErrProgressNotFound  = errors.New("progress record not found")
	ErrProgressConflict  = errors.New("progress record was modified concurrently")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)
