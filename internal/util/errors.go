package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrTenantSeatLimit      = errors.New("tenant seat limit reached")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizAlreadySubmitted = errors.New("quiz already submitted")
	ErrQuestionAnswered     = errors.New("question already answered")
	ErrInvalidAnswer        = errors.New("selected option out of range")
	ErrNoQuestionsAvailable = errors.New("no active questions in selected categories")
	ErrSessionNotFound      = errors.New("study session not found")
	ErrSessionAlreadyEnded  = errors.New("study session already ended")
	ErrTipNotFound          = errors.New("study tip not found")
)
