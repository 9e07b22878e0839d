package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockKV(t *testing.T) (*SQLKV, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &SQLKV{db: db, driver: DriverPostgres}, mock
}

func TestSQLKVGetFound(t *testing.T) {
	kv, mock := newMockKV(t)

	rows := sqlmock.NewRows([]string{"v"}).AddRow(`{"schema":1,"records":[]}`)
	mock.ExpectQuery("select v from kv").WithArgs("hr_requests").WillReturnRows(rows)

	value, ok, err := kv.Get(context.Background(), "hr_requests")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to be found")
	}
	if string(value) != `{"schema":1,"records":[]}` {
		t.Fatalf("unexpected value: %s", value)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSQLKVGetAbsent(t *testing.T) {
	kv, mock := newMockKV(t)

	mock.ExpectQuery("select v from kv").WithArgs("hr_requests").
		WillReturnRows(sqlmock.NewRows([]string{"v"}))

	_, ok, err := kv.Get(context.Background(), "hr_requests")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected key to be absent")
	}
}

func TestSQLKVGetError(t *testing.T) {
	kv, mock := newMockKV(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("select v from kv").WithArgs("hr_requests").WillReturnError(dbErr)

	_, _, err := kv.Get(context.Background(), "hr_requests")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected database error to propagate, got %v", err)
	}
}

func TestSQLKVPutError(t *testing.T) {
	kv, mock := newMockKV(t)

	dbErr := errors.New("disk full")
	mock.ExpectExec("insert into kv").WithArgs("hr_requests", "{}").WillReturnError(dbErr)

	if err := kv.Put(context.Background(), "hr_requests", []byte("{}")); !errors.Is(err, dbErr) {
		t.Fatalf("expected database error to propagate, got %v", err)
	}
}

func TestSQLKVDelete(t *testing.T) {
	kv, mock := newMockKV(t)

	mock.ExpectExec("delete from kv").WithArgs("hr_portal_user").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := kv.Delete(context.Background(), "hr_portal_user"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
