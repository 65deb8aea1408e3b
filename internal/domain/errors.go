package domain

import (
	"errors"
	"fmt"
)

// 错误分类，transport 层按 errors.Is 映射为响应码
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid argument")
	ErrUpstream = errors.New("upstream failure")
)

var (
	ErrUserNotFound            = fmt.Errorf("user %w", ErrNotFound)
	ErrExerciseNotFound        = fmt.Errorf("exercise %w", ErrNotFound)
	ErrRoutineNotFound         = fmt.Errorf("routine %w", ErrNotFound)
	ErrRoutineExerciseNotFound = fmt.Errorf("routine exercise %w", ErrNotFound)

	ErrAlreadyLiked = fmt.Errorf("exercise already liked: %w", ErrConflict)
	ErrEmailTaken   = fmt.Errorf("email already registered: %w", ErrConflict)
)
