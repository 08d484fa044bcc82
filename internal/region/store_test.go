package region

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/redis/go-redis/v9"
)

func storedRegion() Region {
	return Region{
		ID:          "11111111-2222-3333-4444-555555555555",
		Key:         "pyrenees",
		Name:        "Pyrenees",
		CollectedAt: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestStoreSave(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	region := storedRegion()
	mock.ExpectExec("INSERT INTO regions").
		WithArgs(region.ID, region.Key, region.Name, pgxmock.AnyArg(), region.CollectedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewStore(mock, nil)
	if err := store.Save(context.Background(), region); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreGetFromPostgres(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	region := storedRegion()
	payload, _ := json.Marshal(region)
	mock.ExpectQuery("SELECT payload FROM regions").
		WithArgs(region.ID).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	store := NewStore(mock, nil)
	got, err := store.Get(context.Background(), region.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Key != "pyrenees" || !got.CollectedAt.Equal(region.CollectedAt) {
		t.Errorf("got %+v", got)
	}
}

func TestStoreGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT payload FROM regions").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	store := NewStore(mock, nil)
	if _, err := store.Get(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown region")
	}
}

func TestStoreSavePopulatesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	region := storedRegion()
	mock.ExpectExec("INSERT INTO regions").
		WithArgs(region.ID, region.Key, region.Name, pgxmock.AnyArg(), region.CollectedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewStore(mock, redisClient)
	if err := store.Save(context.Background(), region); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// both lookups are served from redis, no further db expectations
	for _, idOrKey := range []string{region.ID, region.Key} {
		got, err := store.Get(context.Background(), idOrKey)
		if err != nil {
			t.Fatalf("Get(%q): %v", idOrKey, err)
		}
		if got.ID != region.ID {
			t.Errorf("Get(%q) id = %q", idOrKey, got.ID)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreGetBackfillsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	region := storedRegion()
	payload, _ := json.Marshal(region)
	mock.ExpectQuery("SELECT payload FROM regions").
		WithArgs(region.ID).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	store := NewStore(mock, redisClient)
	if _, err := store.Get(context.Background(), region.ID); err != nil {
		t.Fatalf("first Get: %v", err)
	}

	// second read hits the cache
	if _, err := store.Get(context.Background(), region.ID); err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStoreIgnoresRedisFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	region := storedRegion()
	payload, _ := json.Marshal(region)
	mock.ExpectQuery("SELECT payload FROM regions").
		WithArgs(region.ID).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	store := NewStore(mock, redisClient)
	got, err := store.Get(context.Background(), region.ID)
	if err != nil {
		t.Fatalf("Get with dead redis: %v", err)
	}
	if got.Key != "pyrenees" {
		t.Errorf("got %+v", got)
	}
}
