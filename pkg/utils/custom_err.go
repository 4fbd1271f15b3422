package utils

import "errors"

var (
	ErrPOINotFound            = errors.New("poi not found")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrInvalidRequest         = errors.New("invalid itinerary request")
	ErrInsufficientCandidates = errors.New("no eligible places after theme augmentation")
	ErrOracleUnavailable      = errors.New("distance oracle unavailable")
	ErrDatabaseError          = errors.New("database error")
)
