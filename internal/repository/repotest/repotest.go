// Package repotest provides in-memory stand-ins for the PostgreSQL
// repositories. They follow the same error contract and are used by the
// service, handler and router tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/student-records/internal/model"
	"github.com/stemsi/student-records/internal/repository"
)

// AccountStore is an in-memory account repository.
type AccountStore struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]model.Account

	// Err, when set, is returned by every method.
	Err error
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{accounts: make(map[uuid.UUID]model.Account)}
}

func (s *AccountStore) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	return &a, nil
}

func (s *AccountStore) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrAccountNotFound
}

func (s *AccountStore) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.accounts {
		if existing.Email == a.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	a.ID = uuid.New()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.accounts[a.ID] = *a
	return nil
}

func (s *AccountStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	a, ok := s.accounts[id]
	if !ok {
		return repository.ErrAccountNotFound
	}
	a.PasswordHash = passwordHash
	a.UpdatedAt = time.Now().UTC()
	s.accounts[id] = a
	return nil
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// StudentStore is an in-memory student repository.
type StudentStore struct {
	mu       sync.Mutex
	students map[uuid.UUID]model.Student

	// Err, when set, is returned by every method.
	Err error
}

// NewStudentStore creates an empty StudentStore.
func NewStudentStore() *StudentStore {
	return &StudentStore{students: make(map[uuid.UUID]model.Student)}
}

func (s *StudentStore) List(_ context.Context) ([]model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Student, 0, len(s.students))
	for _, st := range s.students {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *StudentStore) GetByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return &st, nil
}

func (s *StudentStore) Create(_ context.Context, st *model.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	now := time.Now().UTC()
	st.ID = uuid.New()
	st.CreatedAt = now
	st.UpdatedAt = now
	s.students[st.ID] = *st
	return nil
}

func (s *StudentStore) Replace(_ context.Context, st *model.Student) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	existing, ok := s.students[st.ID]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	updated := *st
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	s.students[st.ID] = updated
	return &updated, nil
}

func (s *StudentStore) Patch(_ context.Context, id uuid.UUID, p *model.StudentPatch) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	if p.FirstName != nil {
		st.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		st.LastName = *p.LastName
	}
	if p.Gender != nil {
		st.Gender = p.Gender
	}
	if p.Email != nil {
		st.Email = p.Email
	}
	if p.Age != nil {
		st.Age = p.Age
	}
	if p.Course != nil {
		st.Course = p.Course
	}
	st.UpdatedAt = time.Now().UTC()
	s.students[id] = st
	return &st, nil
}

func (s *StudentStore) Delete(_ context.Context, id uuid.UUID) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	st, ok := s.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	delete(s.students, id)
	return &st, nil
}
