package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/student-records/internal/model"
)

const studentColumns = `id, first_name, last_name, gender, email, age, course, created_at, updated_at`

// StudentRepository handles student data access. Every write is a single
// statement, so concurrent writers to one row resolve as last-write-wins.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudent(row pgx.Row) (*model.Student, error) {
	s := &model.Student{}
	err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Gender, &s.Email, &s.Age, &s.Course, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s, nil
}

// List retrieves all students, oldest first.
func (r *StudentRepository) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("select students: %w", err)
	}
	defer rows.Close()

	students := []model.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}
	return students, nil
}

// GetByID retrieves a student by ID.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	s, err := scanStudent(r.pool.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("select student: %w", err)
	}
	return s, err
}

// Create inserts a new student and fills in its id and timestamps.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	s.ID = uuid.New()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (id, first_name, last_name, gender, email, age, course)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		s.ID, s.FirstName, s.LastName, s.Gender, s.Email, s.Age, s.Course,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// Replace overwrites every mutable field of the student with s.ID and
// returns the stored row.
func (r *StudentRepository) Replace(ctx context.Context, s *model.Student) (*model.Student, error) {
	updated, err := scanStudent(r.pool.QueryRow(ctx,
		`UPDATE students
		 SET first_name = $1, last_name = $2, gender = $3, email = $4, age = $5, course = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING `+studentColumns,
		s.FirstName, s.LastName, s.Gender, s.Email, s.Age, s.Course, s.ID,
	))
	if err != nil && !errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("replace student: %w", err)
	}
	return updated, err
}

// Patch writes only the non-nil fields of p and returns the stored row.
func (r *StudentRepository) Patch(ctx context.Context, id uuid.UUID, p *model.StudentPatch) (*model.Student, error) {
	updated, err := scanStudent(r.pool.QueryRow(ctx,
		`UPDATE students
		 SET first_name = COALESCE($1, first_name),
		     last_name  = COALESCE($2, last_name),
		     gender     = COALESCE($3, gender),
		     email      = COALESCE($4, email),
		     age        = COALESCE($5, age),
		     course     = COALESCE($6, course),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7
		 RETURNING `+studentColumns,
		p.FirstName, p.LastName, p.Gender, p.Email, p.Age, p.Course, id,
	))
	if err != nil && !errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("patch student: %w", err)
	}
	return updated, err
}

// Delete removes a student by ID and returns the row as it was.
func (r *StudentRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	deleted, err := scanStudent(r.pool.QueryRow(ctx,
		`DELETE FROM students WHERE id = $1 RETURNING `+studentColumns, id))
	if err != nil && !errors.Is(err, ErrStudentNotFound) {
		return nil, fmt.Errorf("delete student: %w", err)
	}
	return deleted, err
}
