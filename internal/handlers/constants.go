package handlers

const (
	ErrUserNotFound        = "user not found"
	ErrNotFound            = "not found"
	ErrInvalidJSON         = "invalid JSON body"
	ErrCompletedRequired   = "completed must be a boolean"
	ErrAlreadyInitialized  = "progress already initialized"
	ErrTooManyRequests     = "too many requests"
	ErrEmailDisabled       = "email is not configured"
	ErrAudioUnavailable    = "audio unavailable"
	ErrInternalServerError = "internal server error"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20
