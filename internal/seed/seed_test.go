package seed

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/quackapp/shift-matching/backend/internal/config"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = `name,email,2024-06-01 AM,2024-06-01 PM,2024-06-02 am
Ana Silva,ana@example.com,x,,1
Ben Ortiz,ben@example.com,no,yes,0
`

func TestParseAvailabilityCSV(t *testing.T) {
	records, err := ParseAvailabilityCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ana Silva", records[0].Name)
	assert.Equal(t, []domain.AvailabilityEntry{
		{Date: "2024-06-01", Shift: domain.ShiftAM},
		{Date: "2024-06-02", Shift: domain.ShiftAM},
	}, records[0].Entries)
	assert.Equal(t, []domain.AvailabilityEntry{
		{Date: "2024-06-01", Shift: domain.ShiftPM},
	}, records[1].Entries)
}

func TestParseAvailabilityCSV_BadHeader(t *testing.T) {
	_, err := ParseAvailabilityCSV(strings.NewReader("name,email,monday\n"))
	assert.Error(t, err)

	_, err = ParseAvailabilityCSV(strings.NewReader("name,2024-06-01 AM\n"))
	assert.Error(t, err)

	_, err = ParseAvailabilityCSV(strings.NewReader("name,email,2024-06-01 NIGHT\n"))
	assert.Error(t, err)
}

func TestSeedFromCSV(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	repo := repository.NewRepository(cfg, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE email = $1")).WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name", "password_hash", "is_active", "created_at", "version"}).
			AddRow(int64(7), int64(3), "Ana Silva", "hash", true, time.Now(), int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availabilities")).WithArgs(int64(7), domain.Day("2024-06-01"), domain.ShiftAM).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availabilities")).WithArgs(int64(7), domain.Day("2024-06-02"), domain.ShiftAM).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE email = $1")).WithArgs("ben@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "name", "password_hash", "is_active", "created_at", "version"}))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO workers")).WithArgs(int64(3), "Ben Ortiz", "ben@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "version"}).AddRow(int64(8), true, time.Now(), int64(1)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO availabilities")).WithArgs(int64(8), domain.Day("2024-06-01"), domain.ShiftPM).
		WillReturnResult(sqlmock.NewResult(1, 1))

	count, err := SeedFromCSV(repo, strings.NewReader(sheet), 3, "hash")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
