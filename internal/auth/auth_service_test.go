package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"go-payroll/internal/auth"
	autherrors "go-payroll/internal/auth/errors"
	authMock "go-payroll/internal/auth/mock"
	"go-payroll/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

type authServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *authMock.MockRepository
	service auth.Service
}

func setupAuthServiceTest(t *testing.T) *authServiceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(db, repo, auth.Options{
		Secret:   "test-secret",
		TokenTTL: 12 * time.Hour,
		Now:      func() time.Time { return fixedNow },
	})

	return &authServiceDeps{sqlMock: sqlMock, repo: repo, service: svc}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func bcryptCredential(t *testing.T, username, role, password string, empID *string) *auth.Credential {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.Credential{Username: username, Role: role, PwdHash: string(hash), EmployeeID: empID}
}

func strPtr(s string) *string { return &s }

var admin = domain.Principal{Username: "admin", Role: domain.RoleAdmin}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when none exists", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(0), nil)
		deps.repo.EXPECT().
			CreateIfAbsent(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, cred *auth.Credential) (bool, error) {
				assert.Equal(t, "admin", cred.Username)
				assert.Equal(t, domain.RoleAdmin, cred.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PwdHash), []byte("s3cret")))
				assert.Nil(t, cred.EmployeeID)
				return true, nil
			})

		created, err := deps.service.EnsureAdmin(ctx, " admin ", "s3cret")
		assert.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("existing admin is left alone", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(1), nil)

		created, err := deps.service.EnsureAdmin(ctx, "admin", "other")
		assert.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("employee login returns a token scoped to the employee", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		cred := bcryptCredential(t, "EMP001", domain.RoleEmployee, "password123", strPtr("EMP001"))
		deps.repo.EXPECT().GetByUsername(ctx, "EMP001").Return(cred, nil)

		res, err := deps.service.Login(ctx, auth.LoginRequest{Username: "EMP001", Password: "password123", Role: "employee"})
		assert.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, fixedNow.Add(12*time.Hour), res.ExpiresAt)
		assert.Equal(t, "EMP001", res.User.EmployeeID)

		p, err := deps.service.ParseToken(res.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}, p)
	})

	t.Run("wrong password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		cred := bcryptCredential(t, "admin", domain.RoleAdmin, "admin", nil)
		deps.repo.EXPECT().GetByUsername(ctx, "admin").Return(cred, nil)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "admin", Password: "wrong", Role: "admin"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("role mismatch looks like bad credentials", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		cred := bcryptCredential(t, "admin", domain.RoleAdmin, "admin", nil)
		deps.repo.EXPECT().GetByUsername(ctx, "admin").Return(cred, nil)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin", Role: "employee"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		deps.repo.EXPECT().GetByUsername(ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "x", Role: "admin"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("legacy sha256 hash is upgraded", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		sum := sha256.Sum256([]byte("abcd" + "password123"))
		cred := &auth.Credential{
			Username: "EMP002",
			Role:     domain.RoleEmployee,
			Salt:     "abcd",
			PwdHash:  hex.EncodeToString(sum[:]),
		}
		deps.repo.EXPECT().GetByUsername(ctx, "EMP002").Return(cred, nil)
		deps.repo.EXPECT().
			UpdateHash(ctx, "EMP002", "", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, hash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")))
				return nil
			})

		res, err := deps.service.Login(ctx, auth.LoginRequest{Username: "EMP002", Password: "password123", Role: "employee"})
		assert.NoError(t, err)

		// no emp_id stored: the username doubles as the employee id
		p, err := deps.service.ParseToken(res.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, "EMP002", p.EmployeeID)
	})

	t.Run("failed upgrade does not block login", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		sum := sha256.Sum256([]byte("s" + "pw1234"))
		cred := &auth.Credential{Username: "EMP003", Role: domain.RoleEmployee, Salt: "s", PwdHash: hex.EncodeToString(sum[:])}
		deps.repo.EXPECT().GetByUsername(ctx, "EMP003").Return(cred, nil)
		deps.repo.EXPECT().UpdateHash(ctx, "EMP003", "", gomock.Any()).Return(errors.New("db down"))

		_, err := deps.service.Login(ctx, auth.LoginRequest{Username: "EMP003", Password: "pw1234", Role: "employee"})
		assert.NoError(t, err)
	})
}

func TestService_ParseToken(t *testing.T) {
	ctx := context.Background()
	deps := setupAuthServiceTest(t)
	cred := bcryptCredential(t, "admin", domain.RoleAdmin, "admin", nil)
	deps.repo.EXPECT().GetByUsername(ctx, "admin").Return(cred, nil)

	res, err := deps.service.Login(ctx, auth.LoginRequest{Username: "admin", Password: "admin", Role: "admin"})
	assert.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := auth.NewService(nil, deps.repo, auth.Options{
			Secret: "test-secret",
			Now:    func() time.Time { return fixedNow.Add(13 * time.Hour) },
		})
		_, err := later.ParseToken(res.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := auth.NewService(nil, deps.repo, auth.Options{
			Secret: "another-secret",
			Now:    func() time.Time { return fixedNow },
		})
		_, err := other.ParseToken(res.AccessToken)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := deps.service.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestService_SetEmployeePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("employee cannot set passwords", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		emp := domain.Principal{Username: "EMP001", Role: domain.RoleEmployee, EmployeeID: "EMP001"}

		err := deps.service.SetEmployeePassword(ctx, emp, "EMP001", "password123")
		assert.ErrorIs(t, err, autherrors.ErrForbidden)
	})

	t.Run("short password", func(t *testing.T) {
		deps := setupAuthServiceTest(t)

		err := deps.service.SetEmployeePassword(ctx, admin, "EMP001", "123")
		assert.ErrorIs(t, err, autherrors.ErrPasswordTooShort)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, "EMP404").Return(false, nil)

		err := deps.service.SetEmployeePassword(ctx, admin, "EMP404", "password123")
		assert.ErrorIs(t, err, autherrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin username is protected", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, "admin").Return(true, nil)
		deps.repo.EXPECT().GetByUsername(ctx, "admin").Return(&auth.Credential{Username: "admin", Role: domain.RoleAdmin}, nil)

		err := deps.service.SetEmployeePassword(ctx, admin, "admin", "password123")
		assert.ErrorIs(t, err, autherrors.ErrAdminUsername)
	})

	t.Run("creates employee login", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeExists(ctx, "EMP001").Return(true, nil)
		deps.repo.EXPECT().GetByUsername(ctx, "EMP001").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, cred *auth.Credential) error {
				assert.Equal(t, "EMP001", cred.Username)
				assert.Equal(t, domain.RoleEmployee, cred.Role)
				assert.Equal(t, "EMP001", *cred.EmployeeID)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cred.PwdHash), []byte("password123")))
				return nil
			})

		err := deps.service.SetEmployeePassword(ctx, admin, " EMP001 ", "password123")
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("last admin cannot be deleted", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByUsername(ctx, "admin").Return(&auth.Credential{Username: "admin", Role: domain.RoleAdmin}, nil)
		deps.repo.EXPECT().CountByRole(ctx, domain.RoleAdmin).Return(int64(1), nil)

		err := deps.service.DeleteUser(ctx, admin, "admin")
		assert.ErrorIs(t, err, autherrors.ErrLastAdmin)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByUsername(ctx, "nobody").Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.DeleteUser(ctx, admin, "nobody")
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("deletes employee login", func(t *testing.T) {
		deps := setupAuthServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByUsername(ctx, "EMP001").Return(&auth.Credential{Username: "EMP001", Role: domain.RoleEmployee}, nil)
		deps.repo.EXPECT().Delete(ctx, "EMP001").Return(int64(1), nil)

		err := deps.service.DeleteUser(ctx, admin, "EMP001")
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
