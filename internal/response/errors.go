package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials       ErrCode = "INVALID_CREDENTIALS"
	ErrCurrentPasswordIncorrect ErrCode = "CURRENT_PASSWORD_INCORRECT"
	ErrTokenRequired            ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid             ErrCode = "TOKEN_INVALID"
	ErrTokenExpired             ErrCode = "TOKEN_EXPIRED"
	ErrTokenNotActive           ErrCode = "TOKEN_NOT_ACTIVE"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation          ErrCode = "VALIDATION_ERROR"
	ErrCredentialsRequired ErrCode = "CREDENTIALS_REQUIRED"
	ErrInvalidEmail        ErrCode = "INVALID_EMAIL"
	ErrPasswordTooShort    ErrCode = "PASSWORD_TOO_SHORT"
	ErrPasswordTooLong     ErrCode = "PASSWORD_TOO_LONG"
	ErrPasswordsRequired   ErrCode = "PASSWORDS_REQUIRED"
	ErrInvalidID           ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrEmailTaken      ErrCode = "EMAIL_TAKEN"
	ErrAccountNotFound ErrCode = "ACCOUNT_NOT_FOUND"
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrServiceUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrCurrentPasswordIncorrect:
		return "Current password is incorrect"
	case ErrTokenRequired:
		return "Access token required"
	case ErrTokenInvalid:
		return "Invalid token"
	case ErrTokenExpired:
		return "Token has expired"
	case ErrTokenNotActive:
		return "Token not active yet"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed"
	case ErrCredentialsRequired:
		return "Email and password are required"
	case ErrInvalidEmail:
		return "Invalid email format"
	case ErrPasswordTooShort:
		return "Password must be at least 6 characters long"
	case ErrPasswordTooLong:
		return "Password must be at most 72 bytes long"
	case ErrPasswordsRequired:
		return "Current password and new password are required"
	case ErrInvalidID:
		return "Invalid identifier"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrEmailTaken:
		return "User already exists with this email"
	case ErrAccountNotFound:
		return "User not found"
	case ErrStudentNotFound:
		return "Student not found"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests, please try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrServiceUnavailable:
		return "Service unavailable"
	default:
		return "Internal server error"
	}
}
