package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const insertQuery = `(?s)^\s*INSERT\s+INTO\s+refresh_tokens\s*\(user_id,\s*token_hash,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(time.Hour)
	created := time.Now()
	mock.ExpectQuery(insertQuery).
		WithArgs("u1", "hash123", expires).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("t1", created))

	tok := &models.RefreshToken{UserID: "u1", TokenHash: "hash123", Expires: expires}
	if err := repo.Create(context.Background(), tok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.ID != "t1" || !tok.CreatedAt.Equal(created) {
		t.Fatalf("unexpected token: %+v", tok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_SecondTokenForUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "refresh_tokens_user_id_key"})

	err := repo.Create(context.Background(), &models.RefreshToken{UserID: "u1", TokenHash: "h"})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQuery).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.RefreshToken{UserID: "u1", TokenHash: "h"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const findQuery = `(?s)^\s*SELECT\s+id,\s*user_id,\s*token_hash,\s*expires_at,\s*created_at\s+FROM\s+refresh_tokens\s+WHERE\s+token_hash\s*=\s*\$1\s*$`

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(10 * time.Minute)
	rows := sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "created_at"}).
		AddRow("t1", "u1", "hash123", expires, time.Now())

	mock.ExpectQuery(findQuery).
		WithArgs("hash123").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "hash123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "t1" || got.UserID != "u1" || !got.Expires.Equal(expires) {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestFind_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findQuery).
		WithArgs("hash123").
		WillReturnError(errors.New("db err"))

	_, err := repo.Find(context.Background(), "hash123")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("t1").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("deleting a missing token must not fail: %v", err)
	}

	mock.ExpectExec(q).WithArgs("t1").WillReturnError(errors.New("db err"))
	err := repo.Delete(context.Background(), "t1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id\s*=\s*\$1\s*$`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.DeleteByUser(context.Background(), "u1")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByUser = %d, %v", n, err)
	}
}

func TestDeleteByUserAndID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*DELETE\s+FROM\s+refresh_tokens\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs("u1", "t1").WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.DeleteByUserAndID(context.Background(), "u1", "t1")
	if err != nil || !ok {
		t.Fatalf("DeleteByUserAndID = %v, %v", ok, err)
	}

	mock.ExpectExec(q).WithArgs("u1", "t-old").WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.DeleteByUserAndID(context.Background(), "u1", "t-old")
	if err != nil || ok {
		t.Fatalf("DeleteByUserAndID on a replaced token = %v, %v", ok, err)
	}
}
