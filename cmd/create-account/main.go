package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	zlog "github.com/rs/zerolog/log"
	"github.com/stemsi/student-records/internal/config"
	"github.com/stemsi/student-records/internal/database"
	"github.com/stemsi/student-records/internal/logger"
	"github.com/stemsi/student-records/internal/repository"
	"github.com/stemsi/student-records/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg, err := config.LoadForTools()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	// No tokens are issued here, so the service runs without a TokenService.
	authService := service.NewAuthService(accountRepo, hasher, nil)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Account ===")

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = service.NormalizeEmail(email)
	if !service.ValidEmail(email) {
		fmt.Println("Error: a valid email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if err := service.CheckPassword(password); err != nil {
		printPasswordError(err)
		return
	}

	fmt.Print("Confirm Password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil || password != string(confirm) {
		fmt.Println("Error: passwords do not match")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	account, err := authService.CreateAccount(ctx, email, password)
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		fmt.Printf("Error: an account with email %s already exists\n", email)
		return
	case errors.Is(err, service.ErrCredentialsRequired), errors.Is(err, service.ErrInvalidEmail):
		fmt.Println("Error: a valid email is required")
		return
	case errors.Is(err, service.ErrPasswordTooShort), errors.Is(err, service.ErrPasswordTooLong):
		printPasswordError(err)
		return
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to create account")
	}

	fmt.Printf("\nSuccess! Account %s created with ID: %s\n", account.Email, account.ID)
}

func printPasswordError(err error) {
	if errors.Is(err, service.ErrPasswordTooLong) {
		fmt.Printf("Error: Password must be at most %d bytes\n", service.MaxPasswordBytes)
		return
	}
	fmt.Printf("Error: Password must be at least %d characters\n", service.MinPasswordLength)
}
