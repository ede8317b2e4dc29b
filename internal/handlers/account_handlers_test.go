package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func studentBody(email, studentID string) map[string]interface{} {
	return map[string]interface{}{
		"email":           email,
		"password":        "pw-123",
		"name":            "Grace",
		"student_id":      studentID,
		"major":           "CS",
		"enrollment_date": "2022-09-01",
	}
}

func TestStudentHandlers_CRUD(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedStaff(t)

	w := s.do(t, http.MethodPost, "/api/students/", token, studentBody("grace@uni.edu", "S-1"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	assert.Equal(t, "student", created["role"])
	assert.Equal(t, "2022-09-01", created["enrollment_date"])
	assert.Nil(t, created["gpa"])
	assert.NotContains(t, created, "password")
	id := uint(created["id"].(float64))

	w = s.do(t, http.MethodGet, "/api/students", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "S-1", list[0]["student_id"])

	path := fmt.Sprintf("/api/students/%d", id)
	w = s.do(t, http.MethodPut, path, token, map[string]interface{}{"gpa": 3.7, "role": "staff", "id": 999})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode(t, w)
	assert.Equal(t, 3.7, updated["gpa"])
	assert.Equal(t, "student", updated["role"])
	assert.Equal(t, float64(id), updated["id"])

	w = s.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3.7, decode(t, w)["gpa"])

	w = s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Student deleted successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decode(t, w)["message"])

	w = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStudentHandlers_Errors(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedStaff(t)

	w := s.do(t, http.MethodPost, "/api/students", token, studentBody("admin@uni.edu", "S-1"))
	require.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Email already registered", body["message"])
	assert.Equal(t, false, body["success"])

	w = s.do(t, http.MethodPost, "/api/students", token, studentBody("a@uni.edu", "S-1"))
	require.Equal(t, http.StatusCreated, w.Code)
	w = s.do(t, http.MethodPost, "/api/students", token, studentBody("b@uni.edu", "S-1"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Student ID already in use", decode(t, w)["message"])

	bad := studentBody("c@uni.edu", "S-2")
	bad["enrollment_date"] = "next tuesday"
	w = s.do(t, http.MethodPost, "/api/students", token, bad)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/students", token, "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/students/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/students/4242", token, map[string]string{"major": "Art"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Student not found", decode(t, w)["message"])
}

func TestStudentHandlers_PasswordRejections(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedStaff(t)

	// over 72 characters: rejected by the struct rules
	secret := strings.Repeat("x", 73) + "SECRET"
	body := studentBody("long@uni.edu", "S-1")
	body["password"] = secret
	w := s.do(t, http.MethodPost, "/api/students", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "SECRET")
	assert.Contains(t, w.Body.String(), `"field":"password"`)

	// under 72 characters but over 72 bytes
	wide := strings.Repeat("€", 40)
	body = studentBody("wide@uni.edu", "S-2")
	body["password"] = wide
	w = s.do(t, http.MethodPost, "/api/students", token, body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "Validation failed", decode(t, w)["message"])
	assert.NotContains(t, w.Body.String(), wide)

	w = s.do(t, http.MethodPost, "/api/students", token, studentBody("ok@uni.edu", "S-3"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := uint(decode(t, w)["id"].(float64))

	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/students/%d", id), token, map[string]string{"password": wide})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), wide)
}

func TestProfessorAndStaffHandlers(t *testing.T) {
	s := newTestServer(t)
	adminID, token := s.seedStaff(t)

	w := s.do(t, http.MethodPost, "/api/professors", token, map[string]interface{}{
		"email": "knuth@uni.edu", "password": "pw", "employee_id": "P-1",
		"department": "CS", "title": "Full", "hire_date": "1968-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profID := uint(decode(t, w)["id"].(float64))

	// a professor is not reachable through the staff routes
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/staff/%d", profID), token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Staff member not found", decode(t, w)["message"])

	w = s.do(t, http.MethodPost, "/api/staff", token, map[string]interface{}{
		"email": "clerk@uni.edu", "password": "pw", "employee_id": "T-2",
		"department": "Registry", "position": "Clerk", "hire_date": "2021-04-01",
		"supervisor_id": adminID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	clerk := decode(t, w)
	assert.Equal(t, float64(adminID), clerk["supervisor_id"])

	// the admin cannot report to their own subordinate
	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/staff/%d", adminID), token, map[string]interface{}{
		"supervisor_id": clerk["id"],
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/professors/%d", profID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Professor deleted successfully", decode(t, w)["message"])
}

func TestExportHandler(t *testing.T) {
	s := newTestServer(t)
	_, token := s.seedStaff(t)

	w := s.do(t, http.MethodPost, "/api/students", token, studentBody("x@uni.edu", "S-9"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/students/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "student-roster.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("student")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	w = s.do(t, http.MethodGet, "/api/staff/export", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
