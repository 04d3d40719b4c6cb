package usecase

import "errors"

var (
	// ErrInvalidHorizon is returned when the forecast horizon is not a positive integer within the cap.
	ErrInvalidHorizon = errors.New("forecast horizon must be a whole number of days between 1 and 365")

	// ErrForecastFailed wraps a failure of the regression model.
	ErrForecastFailed = errors.New("forecast model failed")
)
