package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	autherrors "go-payroll/internal/auth/errors"
	"go-payroll/internal/domain"
	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Secret   string
	TokenTTL time.Duration
	Now      func() time.Time
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	ParseToken(token string) (domain.Principal, error)
	Me(ctx context.Context, p domain.Principal) (UserResponse, error)
	SetEmployeePassword(ctx context.Context, p domain.Principal, empID, password string) error
	DeleteUser(ctx context.Context, p domain.Principal, username string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	opts   Options
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}
	return &service{db: db, repo: repo, opts: opts, logger: l}
}

// EnsureAdmin creates the admin login when no admin exists yet. An existing
// admin is never touched, so a changed ADMIN_PASSWORD has no effect on it.
func (s *service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return false, apperror.RequiredField("username")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	admins, err := qtx.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	salt, hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	created, err := qtx.CreateIfAbsent(ctx, &Credential{
		Username:  username,
		Role:      domain.RoleAdmin,
		Salt:      salt,
		PwdHash:   hash,
		CreatedAt: s.opts.Now().UTC(),
	})
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	if created {
		s.logger.Info("admin login created", zap.String("username", username))
	} else {
		s.logger.Warn("admin username already taken by a non-admin login", zap.String("username", username))
	}
	return created, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	username := strings.TrimSpace(req.Username)

	cred, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, err
		}
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	ok, legacy := verifyPassword(cred, req.Password)
	if !ok {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}
	// Logging in through the wrong portal looks the same as a bad password.
	if cred.Role != strings.ToLower(strings.TrimSpace(req.Role)) {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if legacy {
		s.upgradeHash(ctx, cred, req.Password)
	}

	principal := principalOf(cred)
	expiresAt := s.opts.Now().Add(s.opts.TokenTTL)
	token, err := s.generateToken(principal, expiresAt)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed.WithCause(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("login succeeded",
		zap.String("username", cred.Username),
		zap.String("role", cred.Role),
	)

	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC(),
		User:        toUserResponse(cred),
	}, nil
}

// upgradeHash replaces a legacy sha256 hash with bcrypt. Failure is logged and
// the login still succeeds.
func (s *service) upgradeHash(ctx context.Context, cred *Credential, password string) {
	salt, hash, err := hashPassword(password)
	if err == nil {
		err = s.repo.UpdateHash(ctx, cred.Username, salt, hash)
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to upgrade legacy password hash",
			zap.String("username", cred.Username),
			zap.Error(err),
		)
		return
	}
	contextutil.GetLogger(ctx, s.logger).Info("legacy password hash upgraded", zap.String("username", cred.Username))
}

func principalOf(cred *Credential) domain.Principal {
	p := domain.Principal{Username: cred.Username, Role: cred.Role}
	if cred.EmployeeID != nil {
		p.EmployeeID = *cred.EmployeeID
	}
	// employee logins created before emp_id was stored use it as username
	if p.Role == domain.RoleEmployee && p.EmployeeID == "" {
		p.EmployeeID = cred.Username
	}
	return p
}

func (s *service) generateToken(p domain.Principal, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username": p.Username,
		"role":     p.Role,
		"emp_id":   p.EmployeeID,
		"iat":      s.opts.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.opts.Secret))
}

func (s *service) ParseToken(tokenString string) (domain.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.opts.Secret), nil
	}, jwt.WithTimeFunc(s.opts.Now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, autherrors.ErrTokenExpired
		}
		return domain.Principal{}, autherrors.ErrInvalidToken.WithCause(err)
	}
	if !token.Valid {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	empID, _ := claims["emp_id"].(string)
	if username == "" || (role != domain.RoleAdmin && role != domain.RoleEmployee) {
		return domain.Principal{}, autherrors.ErrInvalidToken
	}

	return domain.Principal{Username: username, Role: role, EmployeeID: empID}, nil
}

func (s *service) Me(ctx context.Context, p domain.Principal) (UserResponse, error) {
	cred, err := s.repo.GetByUsername(ctx, p.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// the login was deleted after the token was issued
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return toUserResponse(cred), nil
}

// SetEmployeePassword creates or resets the login of an employee. The
// username is the emp_id.
func (s *service) SetEmployeePassword(ctx context.Context, p domain.Principal, empID, password string) error {
	if !p.IsAdmin() {
		return autherrors.ErrForbidden
	}
	empID = strings.TrimSpace(empID)
	if empID == "" {
		return apperror.RequiredField("emp_id")
	}
	if err := validatePassword(password); err != nil {
		return err
	}

	salt, hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, empID)
	if err != nil {
		return err
	}
	if !exists {
		return autherrors.ErrEmployeeNotFound
	}

	current, err := qtx.GetByUsername(ctx, empID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if current != nil && current.Role == domain.RoleAdmin {
		return autherrors.ErrAdminUsername
	}

	if err := qtx.Save(ctx, &Credential{
		Username:   empID,
		Role:       domain.RoleEmployee,
		Salt:       salt,
		PwdHash:    hash,
		EmployeeID: &empID,
		CreatedAt:  s.opts.Now().UTC(),
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("employee password set", zap.String("emp_id", empID))
	return nil
}

// DeleteUser removes a login only. Employee and payroll rows stay.
func (s *service) DeleteUser(ctx context.Context, p domain.Principal, username string) error {
	if !p.IsAdmin() {
		return autherrors.ErrForbidden
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.RequiredField("username")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cred, err := qtx.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return autherrors.ErrUserNotFound
		}
		return err
	}

	if cred.Role == domain.RoleAdmin {
		admins, err := qtx.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return autherrors.ErrLastAdmin
		}
	}

	if _, err := qtx.Delete(ctx, username); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("login deleted", zap.String("username", username))
	return nil
}
