package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for a student.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Student is a managed student profile.
type Student struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Gender    *string   `json:"gender,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Course    *string   `json:"course,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StudentRequest is the payload for creating a student and for a full
// replace (PUT). Optional fields left out are stored as null.
type StudentRequest struct {
	FirstName string  `json:"firstName" binding:"required,notblank,max=100"`
	LastName  string  `json:"lastName" binding:"required,notblank,max=100"`
	Gender    *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	Age       *int    `json:"age" binding:"omitnil,min=16,max=100"`
	Course    *string `json:"course" binding:"omitempty,max=200"`
}

// Student converts the request into a new, unsaved student.
func (r *StudentRequest) Student() *Student {
	return &Student{
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Gender:    blankToNil(r.Gender),
		Email:     blankToNil(r.Email),
		Age:       r.Age,
		Course:    blankToNil(r.Course),
	}
}

// StudentPatch is the payload for a partial update (PATCH). Only non-nil
// fields are written.
type StudentPatch struct {
	FirstName *string `json:"firstName" binding:"omitnil,notblank,max=100"`
	LastName  *string `json:"lastName" binding:"omitnil,notblank,max=100"`
	Gender    *string `json:"gender" binding:"omitnil,oneof=Male Female Other"`
	Email     *string `json:"email" binding:"omitnil,email,max=255"`
	Age       *int    `json:"age" binding:"omitnil,min=16,max=100"`
	Course    *string `json:"course" binding:"omitnil,max=200"`
}

// Normalize trims surrounding whitespace from the name and email fields in place.
func (p *StudentPatch) Normalize() {
	if p.FirstName != nil {
		v := strings.TrimSpace(*p.FirstName)
		p.FirstName = &v
	}
	if p.LastName != nil {
		v := strings.TrimSpace(*p.LastName)
		p.LastName = &v
	}
	if p.Email != nil {
		v := strings.TrimSpace(*p.Email)
		p.Email = &v
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p *StudentPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Gender == nil &&
		p.Email == nil && p.Age == nil && p.Course == nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
