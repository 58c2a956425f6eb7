package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLastAnswerFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT last_answer").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"last_answer"}).AddRow("previous answer"))

	repo := NewSessionRepository(db)
	answer, ok, err := repo.LastAnswer(context.Background(), "s1")
	if err != nil {
		t.Fatalf("LastAnswer() error = %v", err)
	}
	if !ok || answer != "previous answer" {
		t.Fatalf("LastAnswer() = (%q, %v)", answer, ok)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLastAnswerMissingSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT last_answer").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"last_answer"}))

	repo := NewSessionRepository(db)
	answer, ok, err := repo.LastAnswer(context.Background(), "missing")
	if err != nil {
		t.Fatalf("LastAnswer() error = %v", err)
	}
	if ok || answer != "" {
		t.Fatalf("LastAnswer() = (%q, %v), want miss", answer, ok)
	}
}

func TestRememberAnswerUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO chat_session_context").
		WithArgs("s1", "new answer", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSessionRepository(db)
	if err := repo.RememberAnswer(context.Background(), "s1", "new answer"); err != nil {
		t.Fatalf("RememberAnswer() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS chat_session_context").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSessionRepository(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
}
