package postgres

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/model"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestUserRepo_Create_OK_and_DuplicateEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := &model.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     "Alice",
		Email:    "alice@example.com",
		PwdHash:  []byte("h"),
		SaltAuth: []byte("s"),
		Role:     model.RoleInvestor,
	}

	mock.ExpectExec(`INSERT INTO users \(id, name, email, pwd_hash, salt_auth, role\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(u.ID, u.Name, u.Email, u.PwdHash, u.SaltAuth, string(u.Role)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(`INSERT INTO users \(id, name, email, pwd_hash, salt_auth, role\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(u.ID, u.Name, u.Email, u.PwdHash, u.SaltAuth, string(u.Role)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, name, email, pwd_hash, salt_auth, role, created_at FROM users WHERE email=\$1`).
		WithArgs("bob@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "pwd_hash", "salt_auth", "role", "created_at"}).
			AddRow(id, "Bob", "bob@example.com", []byte("h"), []byte("s"), "analyst", pgxmock.AnyArg()))
	u, err := r.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", u.Email)
	require.Equal(t, model.RoleAnalyst, u.Role)

	mock.ExpectQuery(`SELECT id, name, email, pwd_hash, salt_auth, role, created_at FROM users WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectQuery(`SELECT id, name, email, pwd_hash, salt_auth, role, created_at FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "pwd_hash", "salt_auth", "role", "created_at"}).
			AddRow(id, "Carol", "carol@example.com", []byte("h"), []byte("s"), "investor", pgxmock.AnyArg()))
	u, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)

	mock.ExpectQuery(`SELECT id, name, email, pwd_hash, salt_auth, role, created_at FROM users WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
