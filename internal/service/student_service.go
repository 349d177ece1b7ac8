package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stemsi/student-records/internal/model"
	"github.com/stemsi/student-records/internal/repository"
)

// ErrStudentNotFound is returned when no student has the requested id.
var ErrStudentNotFound = errors.New("student not found")

// StudentStore is the persistence the student resource needs.
type StudentStore interface {
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
	Replace(ctx context.Context, s *model.Student) (*model.Student, error)
	Patch(ctx context.Context, id uuid.UUID, p *model.StudentPatch) (*model.Student, error)
	Delete(ctx context.Context, id uuid.UUID) (*model.Student, error)
}

// StudentService handles student business logic.
type StudentService struct {
	students StudentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{students: students}
}

// List returns every student ordered by creation time. Never nil.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, mapStudentErr("get student", err)
	}
	return student, nil
}

// Create inserts a new student built from req.
func (s *StudentService) Create(ctx context.Context, req *model.StudentRequest) (*model.Student, error) {
	student := req.Student()
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}

// Replace overwrites every mutable field of the student. Optional fields
// absent from req are cleared.
func (s *StudentService) Replace(ctx context.Context, id uuid.UUID, req *model.StudentRequest) (*model.Student, error) {
	student := req.Student()
	student.ID = id
	updated, err := s.students.Replace(ctx, student)
	if err != nil {
		return nil, mapStudentErr("replace student", err)
	}
	return updated, nil
}

// Patch updates only the fields present in p. An empty patch returns the
// current record unchanged.
func (s *StudentService) Patch(ctx context.Context, id uuid.UUID, p *model.StudentPatch) (*model.Student, error) {
	p.Normalize()
	if p.IsEmpty() {
		return s.GetByID(ctx, id)
	}
	updated, err := s.students.Patch(ctx, id, p)
	if err != nil {
		return nil, mapStudentErr("patch student", err)
	}
	return updated, nil
}

// Delete removes a student and returns its last state.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	deleted, err := s.students.Delete(ctx, id)
	if err != nil {
		return nil, mapStudentErr("delete student", err)
	}
	return deleted, nil
}

func mapStudentErr(op string, err error) error {
	if errors.Is(err, repository.ErrStudentNotFound) {
		return ErrStudentNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
