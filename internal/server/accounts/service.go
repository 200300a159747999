// Package accounts implements the credential lifecycle: registration with
// email verification, the one-time-code consumption protocol, and the
// stateless password-reset flow.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"accountd/internal/dbx"
	"accountd/internal/logging"
	"accountd/internal/server/auth"
	"accountd/internal/server/config"
	"accountd/internal/server/mail"
	"accountd/internal/server/otp"
	"accountd/internal/server/otps"
	"accountd/internal/server/password"
	"accountd/internal/server/profiles"
	"accountd/internal/server/store"
	"accountd/internal/server/users"
	"accountd/internal/shared"
)

// Service drives the unverified -> verified/active state machine.
type Service struct {
	db     *sql.DB
	repos  store.RepositoryManager
	mailer mail.Mailer
	logger logging.Logger
	config *config.Config
}

func NewService(db *sql.DB, repos store.RepositoryManager, mailer mail.Mailer, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		db:     db,
		repos:  repos,
		mailer: mailer,
		logger: logger,
		config: cfg,
	}
}

// Register creates an inactive user, its profile and a verification code in
// one transaction, then sends the code. The mail goes out only after the
// commit: the created state is authoritative whether or not delivery works.
func (s *Service) Register(ctx context.Context, email string, plainPassword string, name string) (*users.User, error) {
	email = shared.NormalizeEmail(email)
	if !shared.ValidEmail(email) {
		return nil, shared.ErrorValidation
	}
	if !password.ValidPolicy(plainPassword) {
		return nil, shared.ErrorPasswordPolicy
	}

	// pre-flight duplicate check; the unique constraint still decides the
	// winner under concurrent registration
	if _, err := s.repos.Users(s.db).GetByEmail(ctx, email); err == nil {
		return nil, shared.ErrorEmailExists
	} else if !errors.Is(err, shared.ErrorNotFound) {
		s.logger.Error(ctx, "registration lookup failed", "error", err)
		return nil, shared.ErrorInternal
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return nil, shared.ErrorInternal
	}

	code, err := otp.Generate(s.config.OTPLength)
	if err != nil {
		s.logger.Error(ctx, "otp generation failed", "error", err)
		return nil, shared.ErrorInternal
	}

	user := &users.User{Email: email, PasswordHash: hash}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		user = created

		profile := &profiles.Profile{UserID: user.ID, Name: name}
		if err := s.repos.Profiles(tx).Create(ctx, profile); err != nil {
			return fmt.Errorf("profile create: %w", err)
		}

		return s.mintVerificationCode(ctx, tx, user.ID, code)
	})
	if err != nil {
		if errors.Is(err, shared.ErrorEmailExists) {
			return nil, shared.ErrorEmailExists
		}
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, shared.ErrorInternal
	}

	if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		s.logger.Error(ctx, "verification mail failed", "error", err)
	}

	return user, nil
}

// VerifyEmail consumes the newest unconsumed code and flips the account to
// verified/active. Checks run in a fixed order so the caller always learns
// the most specific failure: unknown user, no active code, expired code,
// wrong code.
func (s *Service) VerifyEmail(ctx context.Context, email string, code string) error {
	email = shared.NormalizeEmail(email)

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorUserNotFound
		}
		s.logger.Error(ctx, "verify lookup failed", "error", err)
		return shared.ErrorInternal
	}

	rec, err := s.repos.OTPs(s.db).LatestActive(ctx, user.ID, otps.PurposeVerifyEmail)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorNoActiveOTP
		}
		s.logger.Error(ctx, "otp lookup failed", "error", err)
		return shared.ErrorInternal
	}

	if rec.Expired(time.Now()) {
		return shared.ErrorOTPExpired
	}
	if !otp.Matches(code, rec.CodeHash) {
		return shared.ErrorOTPInvalid
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.OTPs(tx).MarkUsed(ctx, rec.ID); err != nil {
			return err
		}
		return s.repos.Users(tx).SetVerifiedActive(ctx, user.ID)
	})
	if err != nil {
		// a concurrent verify consumed the code first
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorNoActiveOTP
		}
		s.logger.Error(ctx, "verify commit failed", "error", err)
		return shared.ErrorInternal
	}

	return nil
}

// ResendVerification mints a fresh code for a not-yet-verified account. The
// new code supersedes any outstanding one.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	email = shared.NormalizeEmail(email)

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorUserNotFound
		}
		s.logger.Error(ctx, "resend lookup failed", "error", err)
		return shared.ErrorInternal
	}
	if user.EmailVerified {
		return shared.ErrorValidation
	}

	code, err := otp.Generate(s.config.OTPLength)
	if err != nil {
		s.logger.Error(ctx, "otp generation failed", "error", err)
		return shared.ErrorInternal
	}

	if err := s.mintVerificationCode(ctx, s.db, user.ID, code); err != nil {
		s.logger.Error(ctx, "otp mint failed", "error", err)
		return shared.ErrorInternal
	}

	if err := s.mailer.SendVerificationCode(ctx, user.Email, code); err != nil {
		s.logger.Error(ctx, "verification mail failed", "error", err)
	}

	return nil
}

// ForgotPassword mints a stateless reset link and mails it. An unknown email
// is reported as success so the endpoint cannot be used to enumerate
// accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = shared.NormalizeEmail(email)

	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil
		}
		s.logger.Error(ctx, "forgot-password lookup failed", "error", err)
		return shared.ErrorInternal
	}

	token, err := auth.GenerateResetToken(user.ID, user.PasswordHash,
		[]byte(s.config.SecretKey), s.config.ResetTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "reset token generation failed", "error", err)
		return shared.ErrorInternal
	}

	link := fmt.Sprintf("%s/api/auth/reset-password/%s/%s",
		s.config.BaseURL, auth.EncodeUID(user.ID), token)

	if err := s.mailer.SendPasswordResetLink(ctx, user.Email, link); err != nil {
		s.logger.Error(ctx, "reset mail failed", "error", err)
	}

	return nil
}

// ResetPassword validates the uid/token pair against the user's current
// credential state and overwrites the password hash. Because the token is
// fingerprinted to the old hash, a token can be redeemed at most once.
func (s *Service) ResetPassword(ctx context.Context, uidb64 string, token string, newPassword string) error {
	userID, err := auth.DecodeUID(uidb64)
	if err != nil {
		return shared.ErrorInvalidUID
	}
	if !password.ValidPolicy(newPassword) {
		return shared.ErrorPasswordPolicy
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		// a uid pointing at no user is a uid problem, not a token problem
		if errors.Is(err, shared.ErrorNotFound) {
			return shared.ErrorInvalidUID
		}
		s.logger.Error(ctx, "reset lookup failed", "error", err)
		return shared.ErrorInternal
	}

	if err := auth.ValidateResetToken(token, user.ID, user.PasswordHash, []byte(s.config.SecretKey)); err != nil {
		return shared.ErrorInvalidOrExpiredToken
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		s.logger.Error(ctx, "password hash failed", "error", err)
		return shared.ErrorInternal
	}

	if err := s.repos.Users(s.db).UpdatePassword(ctx, user.ID, hash); err != nil {
		s.logger.Error(ctx, "password update failed", "error", err)
		return shared.ErrorInternal
	}

	return nil
}

func (s *Service) mintVerificationCode(ctx context.Context, db dbx.DBTX, userID string, code string) error {
	rec := &otps.EmailOTP{
		UserID:    userID,
		Purpose:   otps.PurposeVerifyEmail,
		CodeHash:  otp.Digest(code),
		ExpiresAt: time.Now().Add(s.config.OTPTTL),
	}
	return s.repos.OTPs(db).Create(ctx, rec)
}
