package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quackapp/shift-matching/backend/internal/config"
	"github.com/quackapp/shift-matching/backend/internal/domain"
	"github.com/quackapp/shift-matching/backend/internal/logger"
	"github.com/quackapp/shift-matching/backend/internal/repository"
	"github.com/quackapp/shift-matching/backend/internal/seed"
	"github.com/quackapp/shift-matching/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var days int
	var companyID int64
	var csvPath string

	flag.IntVar(&op, "op", 0, "operation (1: random companies, 2: random workers, 3: random jobs, 4: random availability, 5: import availability csv)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.IntVar(&days, "days", 14, "number of days ahead to spread jobs and availability over")
	flag.Int64Var(&companyID, "company-id", 0, "company the workers and jobs belong to")
	flag.StringVar(&csvPath, "csv", "", "availability sheet to import")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		log.Error("failed to open database", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		log.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	today := domain.Today(time.Now())

	switch op {
	case 0:
		log.Error("no operation given")
	case 1:
		if n <= 0 {
			log.Error("invalid number of companies", "n", n)
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			company, err := utils.GenerateRandomCompany(cfg.Seed.Password, cfg.Seed.EmailDomain)
			if err != nil {
				log.Error("failed to generate company", "error", err)
				continue
			}
			if err := repo.CreateCompany(company); err != nil {
				if isDuplicate(err, "companies_username_key", "companies_email_key") {
					log.Warn("company already exists", "username", company.Username)
					continue
				}
				log.Error("failed to insert company", "error", err)
				continue
			}
			cnt++
		}
		log.Info("companies inserted", "count", cnt)
	case 2:
		if !checkCompany(repo, companyID) {
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			worker, err := utils.GenerateRandomWorker(companyID, cfg.Seed.Password, cfg.Seed.EmailDomain)
			if err != nil {
				log.Error("failed to generate worker", "error", err)
				continue
			}
			if err := repo.CreateWorker(worker); err != nil {
				if isDuplicate(err, "workers_email_key") {
					log.Warn("worker already exists", "email", worker.Email)
					continue
				}
				log.Error("failed to insert worker", "error", err)
				continue
			}
			cnt++
		}
		log.Info("workers inserted", "count", cnt)
	case 3:
		if !checkCompany(repo, companyID) {
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			job := utils.GenerateRandomJob(companyID, today, days)
			if err := repo.CreateJob(job); err != nil {
				log.Error("failed to insert job", "error", err)
				continue
			}
			cnt++
		}
		log.Info("jobs inserted", "count", cnt)
	case 4:
		if !checkCompany(repo, companyID) {
			return
		}
		workers, err := repo.GetWorkersByCompanyID(companyID)
		if err != nil {
			log.Error("failed to get workers", "error", err)
			return
		}

		// give every worker a random batch of availability
		cnt := 0
		for _, worker := range workers {
			for _, entry := range utils.GenerateRandomAvailability(worker.ID, today, days) {
				if err := repo.UpsertAvailability(entry); err != nil {
					log.Error("failed to insert availability", "worker_id", worker.ID, "error", err)
					continue
				}
				cnt++
			}
		}
		log.Info("availability inserted", "workers", len(workers), "entries", cnt)
	case 5:
		if !checkCompany(repo, companyID) {
			return
		}
		f, err := os.Open(csvPath)
		if err != nil {
			log.Error("failed to open csv", "path", csvPath, "error", err)
			return
		}
		defer f.Close()

		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("failed to hash seed password", "error", err)
			return
		}

		if _, err := seed.SeedFromCSV(repo, f, companyID, string(hash)); err != nil {
			log.Error("failed to import csv", "error", err)
			return
		}
	default:
		log.Error("unknown operation", "op", op)
	}
}

func checkCompany(repo *repository.Repository, companyID int64) bool {
	if companyID <= 0 {
		slog.Error("a valid -company-id is required")
		return false
	}
	if _, err := repo.GetCompanyByID(companyID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			slog.Error("company does not exist", "company_id", companyID)
		default:
			slog.Error("failed to get company", "error", err)
		}
		return false
	}
	return true
}

func isDuplicate(err error, constraints ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
