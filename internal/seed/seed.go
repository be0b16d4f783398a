package seed

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/repository"
)

// Record is one worker row of an availability sheet.
type Record struct {
	Name    string
	Email   string
	Entries []domain.AvailabilityEntry
}

// ParseAvailabilityCSV reads a sheet whose header has "name", "email" and
// one column per shift named like "2024-06-01 AM". A non-empty cell other
// than "0"/"n"/"no" marks the worker available on that shift.
func ParseAvailabilityCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameCol, emailCol := -1, -1
	slots := make(map[int]domain.AvailabilityEntry)
	for i, header := range headers {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "name":
			nameCol = i
			continue
		case "email":
			emailCol = i
			continue
		}

		// the column is a shift
		dateStr, shiftStr, ok := strings.Cut(strings.TrimSpace(header), " ")
		if !ok {
			return nil, fmt.Errorf("unknown column %q", header)
		}
		day, err := domain.ParseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", header, err)
		}
		shift, err := domain.ParseShift(shiftStr)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", header, err)
		}
		slots[i] = domain.AvailabilityEntry{Date: day, Shift: shift}
	}

	if nameCol < 0 || emailCol < 0 {
		return nil, errors.New("missing name or email column")
	}
	if len(slots) == 0 {
		return nil, errors.New("no shift columns found")
	}

	var records []Record
	for {
		row, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}

		record := Record{
			Name:  strings.TrimSpace(row[nameCol]),
			Email: strings.TrimSpace(row[emailCol]),
		}
		for i, value := range row {
			slot, ok := slots[i]
			if !ok || !available(value) {
				continue
			}
			record.Entries = append(record.Entries, slot)
		}
		records = append(records, record)
	}

	return records, nil
}

func available(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "0", "n", "no":
		return false
	default:
		return true
	}
}

// SeedFromCSV creates the workers of the sheet under companyID (reusing
// existing ones by email) and stores their availability. It returns how
// many entries were written.
func SeedFromCSV(r *repository.Repository, src io.Reader, companyID int64, passwordHash string) (int, error) {
	records, err := ParseAvailabilityCSV(src)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, record := range records {
		if record.Email == "" {
			slog.Error("row has no email", "name", record.Name)
			continue
		}

		worker, err := r.GetWorkerByEmail(record.Email)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				worker = &domain.Worker{
					CompanyID:    companyID,
					Name:         record.Name,
					Email:        record.Email,
					PasswordHash: passwordHash,
				}
				if err := r.CreateWorker(worker); err != nil {
					slog.Error("failed to create worker", "email", record.Email, "error", err)
					continue
				}
			default:
				slog.Error("failed to get worker", "email", record.Email, "error", err)
				continue
			}
		}

		for _, entry := range record.Entries {
			entry.WorkerID = worker.ID
			if err := r.UpsertAvailability(&entry); err != nil {
				slog.Error("failed to insert availability", "worker_id", worker.ID, "date", entry.Date, "shift", entry.Shift, "error", err)
				continue
			}
			count++
		}
	}

	slog.Info("availability sheet imported", "workers", len(records), "entries", count)
	return count, nil
}
