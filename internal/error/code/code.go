package code

// HTTP status codes.
const (
	// StatusOK - 200: success.
	StatusOK = 200
	// StatusCreated - 201: resource created.
	StatusCreated = 201
	// StatusBadRequest - 400: malformed request parameters.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: missing or invalid credentials.
	StatusUnauthorized = 401
	// StatusNotFound - 404: resource does not exist.
	StatusNotFound = 404
	// StatusConflict - 409: resource already exists.
	StatusConflict = 409
	// StatusTooManyRequests - 429: rate limited.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: server failure.
	StatusInternalServerError = 500
	// StatusBadGateway - 502: upstream provider failure.
	StatusBadGateway = 502
)

// Generic error codes (100xxx).
const (
	// ErrSuccess - 200: success.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: unknown error.
	ErrUnknown
	// ErrBind - 400: request body binding failed.
	ErrBind
	// ErrValidation - 400: request parameter validation failed.
	ErrValidation
	// ErrTokenInvalid - 401: invalid or expired token.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: request rate too high.
	ErrTooManyRequests
)

// User and auth error codes (101xxx).
const (
	// ErrUserNotFound - 404: user does not exist.
	ErrUserNotFound int = iota + 101000
	// ErrEmailInUse - 409: email already registered.
	ErrEmailInUse
	// ErrInvalidCredentials - 401: bad email/password combination.
	ErrInvalidCredentials
)

// Weather data error codes (102xxx).
const (
	// ErrWeatherNotFound - 404: no weather record matched.
	ErrWeatherNotFound int = iota + 102000
	// ErrNoWeatherData - 404: no weather data collected yet.
	ErrNoWeatherData
)

// AI provider error codes (103xxx).
const (
	// ErrAIProvider - 502: generative AI provider failed.
	ErrAIProvider int = iota + 103000
	// ErrAINotConfigured - 500: AI provider credentials missing.
	ErrAINotConfigured
)

// Persistence error codes (104xxx).
const (
	// ErrDatabase - 500: database operation failed.
	ErrDatabase int = iota + 104000
)
