package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/stemsi/student-records/internal/config"
	"github.com/stemsi/student-records/internal/database"
	"github.com/stemsi/student-records/internal/logger"
	"github.com/stemsi/student-records/internal/model"
	"github.com/stemsi/student-records/internal/repository"
	"github.com/stemsi/student-records/internal/service"
)

func main() {
	count := flag.Int("count", 10, "Number of accounts to create")
	password := flag.String("password", "123456", "Password for every seeded account")
	flag.Parse()

	if err := service.CheckPassword(*password); err != nil {
		zlog.Fatal().Err(err).Msg("Invalid -password")
	}

	cfg, err := config.LoadForTools()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	// One hash is enough; bcrypt salts are not secret and the password is shared.
	hash, err := hasher.Hash(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	created, skipped := 0, 0
	for i := 1; i <= *count; i++ {
		account := &model.Account{
			Email:        fmt.Sprintf("user%d@mail.com", i),
			PasswordHash: hash,
		}
		if err := accountRepo.Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("email", account.Email).Msg("Failed to create account")
		}
		created++
	}

	fmt.Printf("Seed completed! Created %d accounts, skipped %d existing.\n", created, skipped)
}
