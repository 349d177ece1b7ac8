package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/student-records/internal/logger"
	"github.com/stemsi/student-records/internal/model"
	"github.com/stemsi/student-records/internal/response"
	"github.com/stemsi/student-records/internal/service"
	"github.com/stemsi/student-records/internal/validator"
)

// StudentHandler handles the student resource. Every route requires a token.
type StudentHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		log:            logger.Component(log, "student_handler"),
	}
}

// ListStudents godoc
// GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.studentService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "list")
		return
	}
	response.Success(c, http.StatusOK, students)
}

// GetStudent godoc
// GET /api/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "get")
		return
	}
	response.Success(c, http.StatusOK, student)
}

// CreateStudent godoc
// POST /api/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "create")
		return
	}
	response.Success(c, http.StatusCreated, student)
}

// ReplaceStudent godoc
// PUT /api/students/:id
// Overwrites every mutable field; optional fields left out are cleared.
func (h *StudentHandler) ReplaceStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.StudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Replace(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, "replace")
		return
	}
	response.Success(c, http.StatusOK, student)
}

// PatchStudent godoc
// PATCH /api/students/:id
// Changes only the fields present in the body.
func (h *StudentHandler) PatchStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.StudentPatch
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Patch(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, "patch")
		return
	}
	response.Success(c, http.StatusOK, student)
}

// DeleteStudent godoc
// DELETE /api/students/:id
// Returns the deleted record.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	student, err := h.studentService.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "delete")
		return
	}
	response.Success(c, http.StatusOK, student)
}

func (h *StudentHandler) fail(c *gin.Context, err error, op string) {
	if errors.Is(err, service.ErrStudentNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrStudentNotFound)
		return
	}
	h.log.Error().Err(err).
		Str("op", op).
		Str("student_id", c.Param("id")).
		Str("request_id", response.GetRequestID(c)).
		Msg("Student request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}

// parseID reads the :id path parameter. It writes a 400 and returns false
// when the value is not a UUID.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
