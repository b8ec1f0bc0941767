package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBookingService/internal/config"
	"github.com/m04kA/SMC-SalonBookingService/migrations"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

const usage = "usage: migrate [up | down | version | force <version>]"

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Failed to create database driver: %v", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal("Failed to create source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatal("Failed to create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal("Failed to read version: %v", verr)
		}
		log.Info("Schema version=%d, dirty=%t", version, dirty)
		return
	case "force":
		if len(os.Args) < 3 {
			log.Fatal(usage)
		}
		version, perr := strconv.Atoi(os.Args[2])
		if perr != nil {
			log.Fatal("Invalid version %q: %v", os.Args[2], perr)
		}
		err = m.Force(version)
	default:
		log.Fatal(usage)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migrate %s: no change", command)
		return
	}
	if err != nil {
		log.Fatal("Migrate %s failed: %v", command, err)
	}

	log.Info("Migrate %s complete", command)
}
