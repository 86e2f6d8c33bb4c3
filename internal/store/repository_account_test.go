package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &accountRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func accountRows(account models.Account, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{
			"id", "email", "password_hash", "username", "fullname", "bio",
			"profile_image_url", "social_links", "is_admin",
			"google_linked", "facebook_linked", "total_posts", "total_reads", "created_at",
		}).
		AddRow(
			account.ID, account.Email, account.PasswordHash, account.Username,
			account.Fullname, account.Bio, account.ProfileImageURL, []byte(`{}`),
			account.IsAdmin, account.GoogleLinked, account.FacebookLinked,
			account.TotalPosts, account.TotalReads, createdAt,
		)
}

func TestInsertAccount_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	ctx := context.Background()
	account := models.Account{
		ID:              "0198f1c2-7f3a-7c5e-8b1d-2a9c4e6f8a01",
		Email:           "ada@example.com",
		PasswordHash:    "$2a$10$hash",
		Username:        "ada",
		Fullname:        "Ada Lovelace",
		ProfileImageURL: "https://ui-avatars.com/api/?name=Ada+Lovelace&background=random&size=384",
	}

	now := time.Now()

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(
			account.ID, account.Email, sqlmock.AnyArg(), account.Username,
			account.Fullname, account.Bio, account.ProfileImageURL, sqlmock.AnyArg(),
			account.IsAdmin, account.GoogleLinked, account.FacebookLinked,
		).
		WillReturnRows(accountRows(account, now))

	created, err := repo.Insert(ctx, account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != account.ID {
		t.Errorf("expected ID %s, got %s", account.ID, created.ID)
	}
	if created.Email != account.Email {
		t.Errorf("expected email %s, got %s", account.Email, created.Email)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at %v, got %v", now, created.CreatedAt)
	}
}

func TestInsertAccount_EmailTaken(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation, "accounts_email_key"))

	_, err := repo.Insert(context.Background(), models.Account{Email: "ada@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestInsertAccount_UsernameTaken(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(pgError(pgerrcode.UniqueViolation, "accounts_username_key"))

	_, err := repo.Insert(context.Background(), models.Account{Username: "ada"})
	if !errors.Is(err, ErrUsernameAlreadyTaken) {
		t.Fatalf("expected ErrUsernameAlreadyTaken, got %v", err)
	}
}

func TestInsertAccount_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO accounts").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Insert(context.Background(), models.Account{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrEmailAlreadyExists) || errors.Is(err, ErrUsernameAlreadyTaken) {
		t.Fatalf("unexpected sentinel mapping: %v", err)
	}
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	account := models.Account{
		ID:       "0198f1c2-7f3a-7c5e-8b1d-2a9c4e6f8a01",
		Email:    "ada@example.com",
		Username: "ada",
	}

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs(account.Email).
		WillReturnRows(accountRows(account, time.Now()))

	found, err := repo.FindByEmail(context.Background(), account.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != account.Username {
		t.Errorf("expected username %s, got %s", account.Username, found.Username)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE email").
		WithArgs("missing@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestFindByID_NullPasswordHash(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	id := "0198f1c2-7f3a-7c5e-8b1d-2a9c4e6f8a02"
	rows := sqlmock.
		NewRows([]string{
			"id", "email", "password_hash", "username", "fullname", "bio",
			"profile_image_url", "social_links", "is_admin",
			"google_linked", "facebook_linked", "total_posts", "total_reads", "created_at",
		}).
		AddRow(id, "oauth@example.com", nil, "oauth", "OAuth User", "", "", []byte(`{}`),
			false, true, false, 0, 0, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM accounts WHERE id").
		WithArgs(id).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.HasPassword() {
		t.Error("expected federation-only account to have no password hash")
	}
	if !found.GoogleLinked {
		t.Error("expected google_linked to be true")
	}
}

func TestExistsByUsername(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ada").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "ada")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected username to exist")
	}
}

func TestUpdateFields_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	id := "0198f1c2-7f3a-7c5e-8b1d-2a9c4e6f8a03"
	bio := "systems programmer"
	account := models.Account{ID: id, Email: "ada@example.com", Username: "ada", Bio: bio}

	mock.ExpectQuery("UPDATE accounts SET").
		WithArgs(bio, id).
		WillReturnRows(accountRows(account, time.Now()))

	updated, err := repo.UpdateFields(context.Background(), id, models.AccountUpdate{Bio: &bio})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Bio != bio {
		t.Errorf("expected bio %q, got %q", bio, updated.Bio)
	}
}

func TestUpdateFields_UsernameTaken(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	username := "taken"
	mock.ExpectQuery("UPDATE accounts SET").
		WillReturnError(pgError(pgerrcode.UniqueViolation, "accounts_username_key"))

	_, err := repo.UpdateFields(context.Background(), "some-id", models.AccountUpdate{Username: &username})
	if !errors.Is(err, ErrUsernameAlreadyTaken) {
		t.Fatalf("expected ErrUsernameAlreadyTaken, got %v", err)
	}
}

func TestUpdateFields_Empty(t *testing.T) {
	repo, _, db := newTestAccountRepo(t)
	defer db.Close()

	_, err := repo.UpdateFields(context.Background(), "some-id", models.AccountUpdate{})
	if !errors.Is(err, ErrBuildingSQLQuery) {
		t.Fatalf("expected ErrBuildingSQLQuery, got %v", err)
	}
}

func TestUpdateFields_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	bio := "bio"
	mock.ExpectQuery("UPDATE accounts SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateFields(context.Background(), "missing-id", models.AccountUpdate{Bio: &bio})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestUpdatePasswordHash_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET password_hash").
		WithArgs("$2a$10$newhash", "some-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePasswordHash(context.Background(), "some-id", "$2a$10$newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePasswordHash_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET password_hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(context.Background(), "missing-id", "$2a$10$newhash")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLinkProvider_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts SET google_linked").
		WithArgs("some-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.LinkProvider(context.Background(), "some-id", models.ProviderGoogle); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLinkProvider_UnknownProvider(t *testing.T) {
	repo, _, db := newTestAccountRepo(t)
	defer db.Close()

	err := repo.LinkProvider(context.Background(), "some-id", "myspace")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestDeleteByID_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs("some-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByID(context.Background(), "some-id"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteByID_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs("missing-id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteByID(context.Background(), "missing-id")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
