package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAccount_PasswordHashNeverSerialized(t *testing.T) {
	acc := &Account{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Now(),
	}

	raw, err := json.Marshal(acc)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")

	summary, err := json.Marshal(acc.Summary())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"`+acc.ID.String()+`","email":"alice@example.com","createdAt":"`+acc.CreatedAt.Format(time.RFC3339Nano)+`"}`,
		string(summary))
}

func TestStudentRequest_Student(t *testing.T) {
	req := StudentRequest{
		FirstName: "  Alice ",
		LastName:  "Johnson",
		Gender:    ptr(GenderFemale),
		Email:     ptr("   "),
		Age:       ptr(20),
		Course:    ptr(" Computer Science "),
	}

	s := req.Student()

	assert.Equal(t, "Alice", s.FirstName)
	assert.Equal(t, "Johnson", s.LastName)
	assert.Equal(t, GenderFemale, *s.Gender)
	assert.Nil(t, s.Email, "blank optional fields are stored as null")
	assert.Equal(t, 20, *s.Age)
	assert.Equal(t, "Computer Science", *s.Course)
	assert.Equal(t, uuid.Nil, s.ID)
}

func TestStudentPatch(t *testing.T) {
	p := StudentPatch{}
	assert.True(t, p.IsEmpty())

	p.FirstName = ptr(" Bob ")
	p.Email = ptr(" bob@example.com ")
	p.Normalize()

	assert.False(t, p.IsEmpty())
	assert.Equal(t, "Bob", *p.FirstName)
	assert.Equal(t, "bob@example.com", *p.Email)
	assert.Nil(t, p.LastName)
}

func TestStudent_OptionalFieldsOmitted(t *testing.T) {
	raw, err := json.Marshal(Student{ID: uuid.New(), FirstName: "A", LastName: "B"})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "A", out["firstName"])
	assert.NotContains(t, out, "email")
	assert.NotContains(t, out, "age")
}
