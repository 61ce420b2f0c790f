package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"salesops_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func TestHandleErrorMapsKindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"nil error not handled", nil, http.StatusOK},
		{"validation is 422", apperr.Validation("quantidade inválida"), http.StatusUnprocessableEntity},
		{"forbidden is 403", apperr.Forbidden("fora do escopo"), http.StatusForbidden},
		{"unauthorized is 401", apperr.Unauthorized("sem credenciais"), http.StatusUnauthorized},
		{"conflict is 409", apperr.Conflict("sem leads elegíveis"), http.StatusConflict},
		{"not found is 404", apperr.NotFound("lead não encontrado"), http.StatusNotFound},
		{"internal is 500", apperr.Internal("falha inesperada"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)

			handled := HandleError(c, tc.err)
			if tc.err == nil {
				if handled {
					t.Fatal("nil error should not be handled")
				}
				return
			}

			if !handled {
				t.Fatal("expected error to be handled")
			}
			if recorder.Code != tc.status {
				t.Fatalf("status = %d, want %d", recorder.Code, tc.status)
			}
		})
	}
}

func TestHandleErrorFallsBackTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	if !HandleError(c, http.ErrBodyNotAllowed) {
		t.Fatal("expected non-typed error to be handled")
	}
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}
