package main

import (
	"context"
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

func ptr[T any](v T) *T { return &v }

func sample(first, last, email string, age int, gender, course string) model.StudentRequest {
	return model.StudentRequest{
		FirstName: first,
		LastName:  last,
		Email:     ptr(email),
		Age:       ptr(age),
		Gender:    ptr(gender),
		Course:    ptr(course),
	}
}

var sampleStudents = []model.StudentRequest{
	sample("Alice", "Johnson", "alice@university.edu", 20, model.GenderFemale, "Computer Science"),
	sample("Michael", "Brown", "michael@university.edu", 22, model.GenderMale, "Engineering"),
	sample("Sarah", "Davis", "sarah@university.edu", 19, model.GenderFemale, "Medicine"),
	sample("David", "Wilson", "david@university.edu", 21, model.GenderMale, "Business Administration"),
	sample("Emma", "Martinez", "emma@university.edu", 20, model.GenderFemale, "Psychology"),
	sample("James", "Garcia", "james@university.edu", 23, model.GenderMale, "Mathematics"),
	sample("Olivia", "Anderson", "olivia@university.edu", 18, model.GenderFemale, "Art & Design"),
	sample("Ryan", "Thompson", "ryan@university.edu", 22, model.GenderMale, "Physics"),
	sample("Sophie", "Clark", "sophie@university.edu", 19, model.GenderFemale, "Chemistry"),
	sample("Nathan", "Lee", "nathan@university.edu", 20, model.GenderMale, "History"),
	sample("Isabella", "Rodriguez", "isabella@university.edu", 21, model.GenderFemale, "Literature"),
	sample("Marcus", "Taylor", "marcus@university.edu", 24, model.GenderMale, "Economics"),
	sample("Zoe", "White", "zoe@university.edu", 19, model.GenderFemale, "Sociology"),
	sample("Ethan", "Miller", "ethan@university.edu", 21, model.GenderMale, "Biology"),
	sample("Maya", "Patel", "maya@university.edu", 20, model.GenderFemale, "Environmental Science"),
	sample("Alex", "Chen", "alex@university.edu", 22, model.GenderMale, "Information Technology"),
}

func main() {
	reset := flag.Bool("reset", false, "Delete every existing student before seeding")
	flag.Parse()

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

	if *reset {
		tag, err := pool.Exec(ctx, "DELETE FROM students")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to clear students")
		}
		fmt.Printf("Cleared %d existing students\n", tag.RowsAffected())
	}

	studentService := service.NewStudentService(repository.NewStudentRepository(pool))

	fmt.Printf("=== Seeding %d Students ===\n", len(sampleStudents))

	byGender := make(map[string]int)
	successCount := 0
	for i := range sampleStudents {
		req := &sampleStudents[i]
		student, err := studentService.Create(ctx, req)
		if err != nil {
			fmt.Printf("Error creating student %s %s: %v\n", req.FirstName, req.LastName, err)
			continue
		}
		successCount++
		byGender[*student.Gender]++
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(sampleStudents))
	fmt.Printf("Male: %d, Female: %d\n", byGender[model.GenderMale], byGender[model.GenderFemale])
}
