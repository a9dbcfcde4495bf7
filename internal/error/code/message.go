package code

// Error code to default message mapping.
var codeMessageMap = map[int]string{
	ErrSuccess:         "Success",
	ErrUnknown:         "Internal server error",
	ErrBind:            "Invalid request parameters",
	ErrValidation:      "Request validation failed",
	ErrTokenInvalid:    "Invalid authentication token",
	ErrTooManyRequests: "Too many requests",

	ErrUserNotFound:       "User not found",
	ErrEmailInUse:         "Email is already in use",
	ErrInvalidCredentials: "Invalid credentials",

	ErrWeatherNotFound: "Weather record not found",
	ErrNoWeatherData:   "No weather data available yet",

	ErrAIProvider:      "AI provider request failed",
	ErrAINotConfigured: "AI provider is not configured",

	ErrDatabase: "Database error",
}

// Error code to HTTP status mapping.
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrUserNotFound:       StatusNotFound,
	ErrEmailInUse:         StatusConflict,
	ErrInvalidCredentials: StatusUnauthorized,

	ErrWeatherNotFound: StatusNotFound,
	ErrNoWeatherData:   StatusNotFound,

	ErrAIProvider:      StatusBadGateway,
	ErrAINotConfigured: StatusInternalServerError,

	ErrDatabase: StatusInternalServerError,
}

// GetMessage returns the default message for an error code.
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetStatus returns the HTTP status for an error code.
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
