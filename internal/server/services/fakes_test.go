package services

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/dbx"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/logging"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/auth"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/cooldown"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/models"
	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/notify"
	rolesrepo "github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/roles"
	usersrepo "github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/repositories/users"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// --- in-memory credential store ---

type memStore struct {
	mu    sync.Mutex
	users map[string]models.User
	roles map[string]models.Role

	// error injection, keyed by method name
	errs map[string]error
	// when set, Activate reports a lost race
	activateLoses bool

	txBound int
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]models.User{},
		roles: map[string]models.Role{
			"Repartidor":    {ID: 1, Name: "Repartidor"},
			"Administrador": {ID: 2, Name: "Administrador"},
		},
		errs: map[string]error{},
	}
}

func (s *memStore) byEmail(email string) (models.User, bool) {
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// user returns a copy of the stored user with the given email.
func (s *memStore) user(t *testing.T, email string) models.User {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail(email)
	require.True(t, ok, "user %s not stored", email)
	return u
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memUsers struct{ s *memStore }

func (r *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["Create"]; err != nil {
		return nil, err
	}
	if _, ok := r.s.byEmail(u.Email); ok {
		return nil, common.ErrAlreadyRegistered
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.users[u.ID] = *u
	return u, nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["GetByID"]; err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["GetByEmail"]; err != nil {
		return nil, err
	}
	u, ok := r.s.byEmail(email)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *memUsers) GetByEmailForUpdate(ctx context.Context, email string) (*models.User, error) {
	return r.GetByEmail(ctx, email)
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["Delete"]; err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *memUsers) UpdateVerificationCode(_ context.Context, id, code string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["UpdateVerificationCode"]; err != nil {
		return err
	}
	u, ok := r.s.users[id]
	if !ok || u.Login.Status != models.StatusPending {
		return common.ErrorNotFound
	}
	u.Login.Code = code
	u.Login.CodeExpiresAt = expiresAt
	r.s.users[id] = u
	return nil
}

func (r *memUsers) Activate(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["Activate"]; err != nil {
		return false, err
	}
	u, ok := r.s.users[id]
	if !ok || u.Login.Status != models.StatusPending || r.s.activateLoses {
		return false, nil
	}
	u.Login = models.Login{Status: models.StatusActive}
	r.s.users[id] = u
	return true, nil
}

func (r *memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["UpdatePasswordHash"]; err != nil {
		return err
	}
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

func (r *memUsers) ReplacePasswordHash(_ context.Context, id, from, to string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["ReplacePasswordHash"]; err != nil {
		return false, err
	}
	u, ok := r.s.users[id]
	if !ok || u.PasswordHash != from {
		return false, nil
	}
	u.PasswordHash = to
	r.s.users[id] = u
	return true, nil
}

type memRoles struct{ s *memStore }

func (r *memRoles) GetByName(_ context.Context, name string) (*models.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.errs["GetByName"]; err != nil {
		return nil, err
	}
	role, ok := r.s.roles[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &role, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	if _, ok := db.(*sql.Tx); ok {
		m.s.mu.Lock()
		m.s.txBound++
		m.s.mu.Unlock()
	}
	return &memUsers{s: m.s}
}

func (m *fakeRepoManager) Roles(dbx.DBTX) rolesrepo.Repository { return &memRoles{s: m.s} }

// --- notifier and limiter mocks ---

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendVerificationCode(ctx context.Context, to notify.Recipient, code string, ttl time.Duration) error {
	return m.Called(ctx, to, code, ttl).Error(0)
}

func (m *mockNotifier) SendTemporaryPassword(ctx context.Context, to notify.Recipient, password string) error {
	return m.Called(ctx, to, password).Error(0)
}

type mockLimiter struct{ mock.Mock }

func (m *mockLimiter) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockLimiter) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

var (
	_ notify.Notifier  = (*mockNotifier)(nil)
	_ cooldown.Limiter = (*mockLimiter)(nil)
)

// --- service fixture ---

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *AccountService
	store    *memStore
	notifier *mockNotifier
	tokens   *auth.TokenIssuer
	clock    time.Time
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: 2 * time.Hour,
		VerificationCodeTTL:   15 * time.Minute,
		BcryptCost:            bcrypt.MinCost,
		DefaultRole:           "Repartidor",
		PhoneRegion:           "CO",
	}
}

func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newFixtureWithDB(t *testing.T, db *sql.DB, l cooldown.Limiter) *fixture {
	t.Helper()
	cfg := testConfig()

	tokens, err := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenValidityDuration)
	require.NoError(t, err)

	f := &fixture{
		store:    newMemStore(),
		notifier: &mockNotifier{},
		tokens:   tokens,
		clock:    baseTime,
	}
	f.svc = NewAccountService(db, &fakeRepoManager{s: f.store}, tokens, f.notifier, l, logging.Discard(), cfg)
	f.svc.now = func() time.Time { return f.clock }

	ids := 0
	f.svc.newID = func() string {
		ids++
		return "user-" + strconv.Itoa(ids)
	}
	return f
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithDB(t, newSQLiteDB(t), nil)
}

// captureCode makes the notifier accept verification emails and records
// the last code sent.
func (f *fixture) captureCode(code *string) {
	f.notifier.On("SendVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { *code = args.String(2) }).
		Return(nil)
}

// registerActive stores an ACTIVE user with the given password.
func (f *fixture) registerActive(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{
		ID:           "active-" + email,
		Email:        email,
		FirstName:    "Ann",
		LastName:     "Lee",
		PasswordHash: string(hash),
		RoleID:       1,
		RoleName:     "Repartidor",
		Login:        models.Login{Status: models.StatusActive},
	}
	f.store.mu.Lock()
	f.store.users[u.ID] = u
	f.store.mu.Unlock()
	return u
}

// registerPending stores a PENDING user with a known code.
func (f *fixture) registerPending(t *testing.T, email, password, code string, expiresAt time.Time) models.User {
	t.Helper()
	u := f.registerActive(t, email, password)
	u.ID = "pending-" + email
	u.Login = models.Login{Code: code, CodeExpiresAt: expiresAt, Status: models.StatusPending}

	f.store.mu.Lock()
	delete(f.store.users, "active-"+email)
	f.store.users[u.ID] = u
	f.store.mu.Unlock()
	return u
}
