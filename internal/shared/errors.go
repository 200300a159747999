package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")
	ErrorInternal = errors.New("internal error")

	// registration-specific errors
	ErrorEmailExists = errors.New("a user with this email already exists")
	ErrorValidation  = errors.New("validation error")

	// verification lifecycle errors
	ErrorUserNotFound = errors.New("no user found for this email")
	ErrorNoActiveOTP  = errors.New("no active otp found")
	ErrorOTPExpired   = errors.New("otp expired")
	ErrorOTPInvalid   = errors.New("invalid otp")

	// password reset errors
	ErrorInvalidUID            = errors.New("invalid uid")
	ErrorInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrorPasswordPolicy        = errors.New("password must be at least 8 characters")

	// auth-specific errors. ErrorUnauthorized deliberately covers wrong
	// credentials, unverified email, and inactive accounts without
	// distinguishing them.
	ErrorUnauthorized = errors.New("no active account found with the given credentials")
	ErrorInvalidToken = errors.New("invalid token")
	ErrorForbidden    = errors.New("forbidden")

	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")

	// profile-specific errors
	ErrorAvatarTooLarge = errors.New("avatar must be at most 2 MiB")
)
