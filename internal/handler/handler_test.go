package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"

	"github.com/Vamshir3156/taskify-API/internal/config"
	"github.com/Vamshir3156/taskify-API/internal/middleware"
	"github.com/Vamshir3156/taskify-API/internal/models"
	"github.com/Vamshir3156/taskify-API/internal/repository"
	"github.com/Vamshir3156/taskify-API/internal/service"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{JWTSecret: testSecret}
	svc := service.NewService(repository.NewRepository(db), log, cfg, nil)
	return NewHandler(svc, log), mock
}

// authedRequest builds a request carrying userID the way AuthMiddleware
// attaches it.
func authedRequest(method, target string, body string, userID models.UserID) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func userRows(id, name, email, hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at"}).
		AddRow(id, name, email, hash, time.Now())
}

func taskRows(id, title, description, status, userID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}).
		AddRow(id, title, description, status, userID, now, now)
}
