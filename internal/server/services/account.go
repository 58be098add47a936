// Package services contains server-side business logic. AccountService runs
// the credential lifecycle: signup, email verification, code resend, sign-in,
// password change and password reset.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/dbx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/auth"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/cooldown"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/notify"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/repomanager"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/validation"
	"github.com/google/uuid"
)

// RegisterRequest is the signup payload. Optional fields may be empty.
type RegisterRequest struct {
	Email          string
	Password       string
	FirstName      string
	MiddleName     string
	LastName       string
	SecondLastName string
	Phone          string
}

type RegisterResult struct {
	UserID string
	Email  string
}

// AccountService orchestrates the account lifecycle over the credential
// store, the notifier and the token issuer. The store is the only shared
// state; every operation is a single independent request.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	hasher      *auth.PasswordHasher
	notifier    notify.Notifier
	limiter     cooldown.Limiter
	logger      logging.Logger

	defaultRole string
	phoneRegion string
	codeTTL     time.Duration

	now         func() time.Time
	newID       func() string
	newCode     func() (string, error)
	newPassword func() (string, error)
}

// NewAccountService wires the service from its collaborators and server
// config. A nil limiter disables the resend cooldown.
func NewAccountService(
	db *sql.DB,
	m repomanager.RepositoryManager,
	tokens *auth.TokenIssuer,
	n notify.Notifier,
	l cooldown.Limiter,
	logger logging.Logger,
	cfg *config.Config,
) *AccountService {
	if l == nil {
		l = cooldown.Noop{}
	}
	return &AccountService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      auth.NewPasswordHasher(cfg.BcryptCost),
		notifier:    n,
		limiter:     l,
		logger:      logger.With("module", "account_service"),
		defaultRole: cfg.DefaultRole,
		phoneRegion: cfg.PhoneRegion,
		codeTTL:     cfg.VerificationCodeTTL,
		now:         time.Now,
		newID:       uuid.NewString,
		newCode:     auth.GenerateVerificationCode,
		newPassword: func() (string, error) {
			return auth.GenerateTemporaryPassword(auth.TemporaryPasswordLength)
		},
	}
}

// Register creates a PENDING user and emails it a verification code. If the
// email cannot be sent the user is deleted again and the call fails with
// common.ErrNotificationFailure.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	const op = "services.Register"

	email := validation.NormalizeEmail(req.Email)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)

	if err := validation.Registration(email, req.Password, firstName, lastName); err != nil {
		return nil, fail(op, err)
	}

	phone, err := validation.NormalizePhone(req.Phone, s.phoneRegion)
	if err != nil {
		return nil, fail(op, err)
	}

	users := s.repomanager.Users(s.db)

	_, err = users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fail(op, common.ErrAlreadyRegistered)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fail(op, err)
	}

	role, err := s.repomanager.Roles(s.db).GetByName(ctx, s.defaultRole)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(ctx, "default role missing", "op", op, "role", s.defaultRole)
			return nil, fmt.Errorf("%s: role %q: %w", op, s.defaultRole, common.ErrConfiguration)
		}
		return nil, fail(op, err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fail(op, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fail(op, err)
	}

	user := &models.User{
		ID:             s.newID(),
		Email:          email,
		FirstName:      firstName,
		MiddleName:     strings.TrimSpace(req.MiddleName),
		LastName:       lastName,
		SecondLastName: strings.TrimSpace(req.SecondLastName),
		Phone:          phone,
		PasswordHash:   hash,
		RoleID:         role.ID,
		RoleName:       role.Name,
		Login: models.Login{
			Code:          code,
			CodeExpiresAt: s.now().Add(s.codeTTL),
			Status:        models.StatusPending,
		},
	}

	if _, err := users.Create(ctx, user); err != nil {
		return nil, fail(op, err)
	}

	if err := s.notifier.SendVerificationCode(ctx, recipient(user), code, s.codeTTL); err != nil {
		s.logger.Warn(ctx, "verification email failed, removing user", "op", op, "user_id", user.ID, "error", err)
		if delErr := users.Delete(context.WithoutCancel(ctx), user.ID); delErr != nil {
			s.logger.Error(ctx, "failed to remove unreachable user", "op", op, "user_id", user.ID, "error", delErr)
		}
		return nil, notificationFailure(op, err)
	}

	s.logger.Info(ctx, "user registered", "op", op, "user_id", user.ID)
	return &RegisterResult{UserID: user.ID, Email: user.Email}, nil
}

// Verify activates a PENDING user whose code matches and has not expired,
// and returns a session token. Expiry is checked before the code itself.
func (s *AccountService) Verify(ctx context.Context, email, code string) (string, error) {
	const op = "services.Verify"

	email = validation.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if err := validation.Required(email, code); err != nil {
		return "", fail(op, err)
	}

	users := s.repomanager.Users(s.db)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return "", fail(op, err)
	}
	if user.IsActive() {
		return "", fail(op, common.ErrAlreadyVerified)
	}
	if user.Login.Expired(s.now()) {
		return "", fail(op, common.ErrCodeExpired)
	}
	if !user.Login.HasCode() || subtle.ConstantTimeCompare([]byte(code), []byte(user.Login.Code)) != 1 {
		return "", fail(op, common.ErrCodeMismatch)
	}

	activated, err := users.Activate(ctx, user.ID)
	if err != nil {
		return "", fail(op, err)
	}
	if !activated {
		return "", fail(op, common.ErrAlreadyVerified)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fail(op, err)
	}

	s.logger.Info(ctx, "user verified", "op", op, "user_id", user.ID)
	return token, nil
}

// ResendCode replaces a PENDING user's code and emails the new one. The new
// code is kept even when sending fails, so the caller may simply retry.
func (s *AccountService) ResendCode(ctx context.Context, email string) error {
	const op = "services.ResendCode"

	email = validation.NormalizeEmail(email)
	if err := validation.Required(email); err != nil {
		return fail(op, err)
	}

	users := s.repomanager.Users(s.db)

	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fail(op, err)
	}
	if user.IsActive() {
		return fail(op, common.ErrAlreadyVerified)
	}

	ok, err := s.limiter.Acquire(ctx, email)
	if err != nil {
		s.logger.Warn(ctx, "resend cooldown unavailable", "op", op, "error", err)
		ok = true
	}
	if !ok {
		return fail(op, common.ErrResendTooSoon)
	}

	code, err := s.newCode()
	if err != nil {
		return fail(op, err)
	}
	expiresAt := s.now().Add(s.codeTTL)

	if err := users.UpdateVerificationCode(ctx, user.ID, code, expiresAt); err != nil {
		// the row left PENDING between the read and the update
		if errors.Is(err, common.ErrorNotFound) {
			return fail(op, common.ErrAlreadyVerified)
		}
		return fail(op, err)
	}

	if err := s.notifier.SendVerificationCode(ctx, recipient(user), code, s.codeTTL); err != nil {
		if relErr := s.limiter.Release(context.WithoutCancel(ctx), email); relErr != nil {
			s.logger.Warn(ctx, "failed to release resend cooldown", "op", op, "error", relErr)
		}
		return notificationFailure(op, err)
	}

	s.logger.Info(ctx, "verification code resent", "op", op, "user_id", user.ID)
	return nil
}

// SignIn checks credentials of an ACTIVE user and returns a session token.
// Unverified users get common.ErrNotVerified whatever the password.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (string, error) {
	const op = "services.SignIn"

	email = validation.NormalizeEmail(email)
	if err := validation.Credentials(email, password); err != nil {
		return "", fail(op, err)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return "", fail(op, err)
	}
	if !user.IsActive() {
		return "", fail(op, common.ErrNotVerified)
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", fail(op, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fail(op, err)
	}

	s.logger.Info(ctx, "user signed in", "op", op, "user_id", user.ID)
	return token, nil
}

// ChangePassword replaces the hash of an ACTIVE user after checking the
// current password. The user row stays locked for the whole check-and-set.
func (s *AccountService) ChangePassword(ctx context.Context, email, current, next string) error {
	const op = "services.ChangePassword"

	email = validation.NormalizeEmail(email)
	if err := validation.PasswordChange(email, current, next); err != nil {
		return fail(op, err)
	}

	var userID string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		user, err := users.GetByEmailForUpdate(ctx, email)
		if err != nil {
			return err
		}
		if !user.IsActive() {
			return common.ErrNotVerified
		}
		if err := s.hasher.Compare(user.PasswordHash, current); err != nil {
			return err
		}

		hash, err := s.hasher.Hash(next)
		if err != nil {
			return err
		}

		userID = user.ID
		return users.UpdatePasswordHash(ctx, user.ID, hash)
	})
	if err != nil {
		return fail(op, err)
	}

	s.logger.Info(ctx, "password changed", "op", op, "user_id", userID)
	return nil
}

// ResetPassword stores a generated temporary password and emails it. If the
// email cannot be sent the previous hash is put back, unless the password
// was changed again meanwhile, and the call fails with
// common.ErrNotificationFailure.
func (s *AccountService) ResetPassword(ctx context.Context, email string) error {
	const op = "services.ResetPassword"

	email = validation.NormalizeEmail(email)
	if err := validation.Required(email); err != nil {
		return fail(op, err)
	}

	password, err := s.newPassword()
	if err != nil {
		return fail(op, err)
	}
	newHash, err := s.hasher.Hash(password)
	if err != nil {
		return fail(op, err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		users := s.repomanager.Users(tx)

		u, err := users.GetByEmailForUpdate(ctx, email)
		if err != nil {
			return err
		}
		if err := users.UpdatePasswordHash(ctx, u.ID, newHash); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return fail(op, err)
	}

	if err := s.notifier.SendTemporaryPassword(ctx, recipient(user), password); err != nil {
		restored, rErr := s.repomanager.Users(s.db).ReplacePasswordHash(context.WithoutCancel(ctx), user.ID, newHash, user.PasswordHash)
		switch {
		case rErr != nil:
			s.logger.Error(ctx, "failed to restore password after email failure", "op", op, "user_id", user.ID, "error", rErr)
		case !restored:
			s.logger.Warn(ctx, "password changed concurrently, not restored", "op", op, "user_id", user.ID)
		}
		return notificationFailure(op, err)
	}

	s.logger.Info(ctx, "password reset", "op", op, "user_id", user.ID)
	return nil
}

// Profile returns the user identified by a verified session token.
func (s *AccountService) Profile(ctx context.Context, userID string) (*models.User, error) {
	const op = "services.Profile"

	if err := validation.Required(userID); err != nil {
		return nil, fail(op, err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fail(op, err)
	}
	return user, nil
}

func recipient(u *models.User) notify.Recipient {
	return notify.Recipient{Email: u.Email, Name: u.DisplayName()}
}

// fail prefixes err with op. Errors that match no known kind are wrapped as
// common.ErrorInternal with their text kept as detail.
func fail(op string, err error) error {
	if errors.Is(err, common.ErrorInternal) || common.Kind(err) != common.ErrorInternal {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, common.ErrorInternal, err)
}

func notificationFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, common.ErrNotificationFailure, err)
}
