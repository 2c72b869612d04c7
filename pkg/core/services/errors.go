package services

import "errors"

var (
	// ErrInvalidRequest wraps request validation failures
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNoEmployees aborts generation when the roster is empty
	ErrNoEmployees = errors.New("no active employees found")
	// ErrPlanNotFound is returned when no plan is stored for the requested month
	ErrPlanNotFound = errors.New("shift plan not found")
	// ErrPlanFinalized prevents overwriting a finalized plan
	ErrPlanFinalized = errors.New("shift plan is finalized")
)
