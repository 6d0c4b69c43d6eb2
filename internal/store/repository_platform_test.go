package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/models"
	"github.com/jackc/pgerrcode"
)

var platformColumns = []string{"platform_id", "owner_id", "title", "website_url", "created_at", "updated_at"}

func newTestPlatformRepo(t *testing.T) (*platformRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &platformRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreatePlatform_Success(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{OwnerID: 1, Title: "github", WebsiteURL: "https://github.com"}

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(10, platform.OwnerID, platform.Title, platform.WebsiteURL, now, now)

	mock.ExpectQuery("INSERT INTO platforms").
		WithArgs(platform.OwnerID, platform.Title, platform.WebsiteURL).
		WillReturnRows(rows)

	created, err := repo.CreatePlatform(ctx, platform)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PlatformID != 10 {
		t.Errorf("expected PlatformID=10, got %d", created.PlatformID)
	}
	if created.Title != "github" {
		t.Errorf("expected title github, got %s", created.Title)
	}
}

func TestCreatePlatform_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{OwnerID: 1, Title: "github"}

	mock.ExpectQuery("INSERT INTO platforms").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreatePlatform(ctx, platform)
	if !errors.Is(err, ErrPlatformAlreadyExists) {
		t.Fatalf("expected ErrPlatformAlreadyExists, got %v", err)
	}
}

func TestFindPlatformByTitle_Success(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(10, 1, "github", "https://github.com", now, now)

	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(1), "github").
		WillReturnRows(rows)

	found, err := repo.FindPlatformByTitle(ctx, 1, "github")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.PlatformID != 10 {
		t.Errorf("expected PlatformID=10, got %d", found.PlatformID)
	}
}

func TestFindPlatformByTitle_NotFound(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(1), "unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPlatformByTitle(ctx, 1, "unknown")
	if !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
}

func TestFindPlatformByID_NotFound(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	// a platform owned by someone else scans as no rows
	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(2), int64(10)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPlatformByID(ctx, 2, 10)
	if !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
}

func TestListPlatforms_Success(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(11, 1, "gitlab", "", now, now).
		AddRow(10, 1, "github", "https://github.com", now, now)

	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	platforms, err := repo.ListPlatforms(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(platforms) != 2 {
		t.Fatalf("expected 2 platforms, got %d", len(platforms))
	}
	if platforms[0].Title != "gitlab" {
		t.Errorf("expected newest platform first, got %s", platforms[0].Title)
	}
}

func TestListPlatforms_TitleFilter(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(10, 1, "github", "https://github.com", now, now)

	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(1), "github").
		WillReturnRows(rows)

	platforms, err := repo.ListPlatforms(ctx, 1, "github")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(platforms) != 1 {
		t.Fatalf("expected 1 platform, got %d", len(platforms))
	}
}

func TestListPlatforms_Empty(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT platform_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(platformColumns))

	platforms, err := repo.ListPlatforms(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(platforms) != 0 {
		t.Errorf("expected empty result, got %d platforms", len(platforms))
	}
}

func TestUpdatePlatform_Success(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{PlatformID: 10, OwnerID: 1, Title: "codeberg", WebsiteURL: "https://codeberg.org"}

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(10, 1, "codeberg", "https://codeberg.org", now, now)

	mock.ExpectQuery("UPDATE platforms").
		WithArgs(platform.Title, platform.WebsiteURL, platform.OwnerID, platform.PlatformID).
		WillReturnRows(rows)

	updated, err := repo.UpdatePlatform(ctx, platform)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "codeberg" {
		t.Errorf("expected title codeberg, got %s", updated.Title)
	}
}

func TestUpdatePlatform_WebsiteURLOnly(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{PlatformID: 10, OwnerID: 1, WebsiteURL: "https://git.example.com"}

	now := time.Now()
	rows := sqlmock.
		NewRows(platformColumns).
		AddRow(10, 1, "gitea", "https://git.example.com", now, now)

	// the title column is untouched when no new title is supplied
	mock.ExpectQuery("UPDATE platforms").
		WithArgs(platform.WebsiteURL, platform.OwnerID, platform.PlatformID).
		WillReturnRows(rows)

	updated, err := repo.UpdatePlatform(ctx, platform)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "gitea" {
		t.Errorf("expected stored title gitea, got %s", updated.Title)
	}
	if updated.WebsiteURL != "https://git.example.com" {
		t.Errorf("expected updated website url, got %s", updated.WebsiteURL)
	}
}

func TestUpdatePlatform_TitleCollision(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{PlatformID: 10, OwnerID: 1, Title: "gitlab"}

	mock.ExpectQuery("UPDATE platforms").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdatePlatform(ctx, platform)
	if !errors.Is(err, ErrPlatformAlreadyExists) {
		t.Fatalf("expected ErrPlatformAlreadyExists, got %v", err)
	}
}

func TestUpdatePlatform_NotFound(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()
	platform := models.Platform{PlatformID: 404, OwnerID: 1, Title: "ghost"}

	mock.ExpectQuery("UPDATE platforms").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePlatform(ctx, platform)
	if !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
}

func TestDeletePlatform_Success(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM credentials").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM platforms").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeletePlatform(ctx, 1, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeletePlatform_NotFoundRollsBack(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM credentials").
		WithArgs(int64(1), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM platforms").
		WithArgs(int64(1), int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeletePlatform(ctx, 1, 404)
	if !errors.Is(err, ErrPlatformNotFound) {
		t.Fatalf("expected ErrPlatformNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDeletePlatform_CredentialDeleteFailureRollsBack(t *testing.T) {
	repo, mock, db := newTestPlatformRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM credentials").
		WithArgs(int64(1), int64(10)).
		WillReturnError(errors.New("db failure"))
	mock.ExpectRollback()

	err := repo.DeletePlatform(ctx, 1, 10)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected wrapped ErrExecutingStatement, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
