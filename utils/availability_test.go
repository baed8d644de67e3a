package utils

import (
	"math/rand"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// referenceOverlap enumerates days, the slow but obviously correct way.
func referenceOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	for d := aStart; !d.After(aEnd); d = d.AddDate(0, 0, 1) {
		if !d.Before(bStart) && !d.After(bEnd) {
			return true
		}
	}
	return false
}

func day(n int) time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestOverlaps_KnownCases(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{"disjoint before", 0, 2, 3, 5, false},
		{"disjoint after", 3, 5, 0, 2, false},
		{"shared boundary day", 0, 2, 2, 4, true},
		{"contained", 0, 10, 3, 5, true},
		{"containing", 3, 5, 0, 10, true},
		{"identical", 1, 3, 1, 3, true},
		{"single day ranges equal", 2, 2, 2, 2, true},
		{"single day ranges apart", 2, 2, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(day(tt.aStart), day(tt.aEnd), day(tt.bStart), day(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		aStart := rng.Intn(30)
		aEnd := aStart + rng.Intn(10)
		bStart := rng.Intn(30)
		bEnd := bStart + rng.Intn(10)

		got := Overlaps(day(aStart), day(aEnd), day(bStart), day(bEnd))
		want := referenceOverlap(day(aStart), day(aEnd), day(bStart), day(bEnd))
		require.Equalf(t, want, got, "a=[%d,%d] b=[%d,%d]", aStart, aEnd, bStart, bEnd)
	}
}

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestIsAvailable_Idempotent(t *testing.T) {
	gdb, mock := openMockDB(t)
	start, end := day(0), day(2)

	// Two identical calls, no intervening writes: same answer.
	for i := 0; i < 2; i++ {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
			WithArgs(1, end, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	}

	first, err := IsAvailable(gdb, 1, start, end)
	require.NoError(t, err)
	second, err := IsAvailable(gdb, 1, start, end)
	require.NoError(t, err)

	assert.True(t, first)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsAvailable_ReportsConflict(t *testing.T) {
	gdb, mock := openMockDB(t)
	start, end := day(1), day(3)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WithArgs(7, end, start).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	available, err := IsAvailable(gdb, 7, start, end)
	require.NoError(t, err)
	assert.False(t, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}
