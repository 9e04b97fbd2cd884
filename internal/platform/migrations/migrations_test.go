package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApplyExecutesAllMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	// One statement per embedded file.
	mock.ExpectExec("store_owner_accounts").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("stores").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("products").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("inventory").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("store_owners").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("users").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Apply(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
