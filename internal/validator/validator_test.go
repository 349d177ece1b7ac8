package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `json:"name" binding:"required,notblank,max=10"`
	Email *string `json:"email" binding:"omitempty,email"`
	Age   *int    `json:"age" binding:"omitnil,min=16,max=100"`
}

func bind(t *testing.T, body string) map[string]string {
	t.Helper()
	Setup()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst sample
	return Bind(c, &dst)
}

func TestBind(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"Valid", `{"name":"Alice","email":"a@b.co","age":20}`, ""},
		{"ValidMinimal", `{"name":"Alice"}`, ""},
		{"MissingRequired", `{}`, "name"},
		{"EmptyBody", ``, "name"},
		{"Blank", `{"name":"   "}`, "name"},
		{"TooLong", `{"name":"abcdefghijkl"}`, "name"},
		{"BadEmail", `{"name":"A","email":"nope"}`, "email"},
		{"AgeTooLow", `{"name":"A","age":15}`, "age"},
		{"AgeTooHigh", `{"name":"A","age":101}`, "age"},
		{"AgeWrongType", `{"name":"A","age":"twenty"}`, "age"},
		{"UnknownField", `{"name":"A","nickname":"x"}`, "nickname"},
		{"Malformed", `{"name":`, DetailField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := bind(t, tt.body)
			if tt.wantField == "" {
				assert.Nil(t, fields)
				return
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestBind_TranslatesNotBlank(t *testing.T) {
	fields := bind(t, `{"name":"  "}`)
	assert.Equal(t, "name must not be blank", fields["name"])
}

func TestBind_UsesJSONNames(t *testing.T) {
	fields := bind(t, `{}`)
	assert.Equal(t, "name is a required field", fields["name"])
}
