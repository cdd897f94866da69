package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vamshir3156/taskify-API/internal/models"
)

func TestCreateTask_DefaultsToPending(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(sqlmock.AnyArg(), "Buy milk", "", "pending", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	req := authedRequest(http.MethodPost, "/tasks", `{"title":"Buy milk"}`, "u-1")
	rr := httptest.NewRecorder()
	h.CreateTask(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.UserID("u-1"), task.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_TrimsTitle(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(sqlmock.AnyArg(), "Buy milk", "", "pending", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	req := authedRequest(http.MethodPost, "/tasks", `{"title":"  Buy milk  "}`, "u-1")
	rr := httptest.NewRecorder()
	h.CreateTask(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_MissingTitle(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)

	for _, body := range []string{`{}`, `{"title":"   "}`, `{"description":"no title"}`} {
		req := authedRequest(http.MethodPost, "/tasks", body, "u-1")
		rr := httptest.NewRecorder()
		h.CreateTask(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "body: %s", body)
		assert.JSONEq(t, `{"msg":"Title is required"}`, rr.Body.String())
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)

	req := authedRequest(http.MethodPost, "/tasks", `{"title":"Buy milk","status":"archived"}`, "u-1")
	rr := httptest.NewRecorder()
	h.CreateTask(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg":"Invalid status"}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTask_IgnoresOwnerInBody(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs(sqlmock.AnyArg(), "Buy milk", "", "pending", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	body := `{"title":"Buy milk","user_id":"u-other","owner":"u-other"}`
	req := authedRequest(http.MethodPost, "/tasks", body, "u-1")
	rr := httptest.NewRecorder()
	h.CreateTask(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, models.UserID("u-1"), task.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListTasks_ReturnsOwnTasksNewestFirst(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}).
		AddRow("t-2", "Newer", "", "pending", "u-1", now, now).
		AddRow("t-1", "Older", "", "completed", "u-1", now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u-1").
		WillReturnRows(rows)

	req := authedRequest(http.MethodGet, "/tasks", "", "u-1")
	rr := httptest.NewRecorder()
	h.ListTasks(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, models.TaskID("t-2"), tasks[0].ID)
	assert.Equal(t, models.TaskID("t-1"), tasks[1].ID)
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "status", "user_id", "created_at", "updated_at"}))

	req := authedRequest(http.MethodGet, "/tasks", "", "u-1")
	rr := httptest.NewRecorder()
	h.ListTasks(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetTask_NotFound(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-404").
		WillReturnError(sql.ErrNoRows)

	req := mux.SetURLVars(authedRequest(http.MethodGet, "/tasks/t-404", "", "u-1"),
		map[string]string{"id": "t-404"})
	rr := httptest.NewRecorder()
	h.GetTask(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"msg":"Task not found"}`, rr.Body.String())
}

func TestGetTask_ForeignOwnerLeaksNothing(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Secret plans", "the details", "pending", "u-owner"))

	req := mux.SetURLVars(authedRequest(http.MethodGet, "/tasks/t-1", "", "u-intruder"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.GetTask(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"msg":"Not authorized"}`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), "Secret plans")
	assert.NotContains(t, rr.Body.String(), "the details")
}

func TestGetTask_Owner(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Buy milk", "", "pending", "u-1"))

	req := mux.SetURLVars(authedRequest(http.MethodGet, "/tasks/t-1", "", "u-1"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.GetTask(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, models.TaskID("t-1"), task.ID)
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Buy milk", "two liters", "pending", "u-1"))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs("Buy milk", "two liters", "completed", "t-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	req := mux.SetURLVars(authedRequest(http.MethodPut, "/tasks/t-1", `{"status":"completed"}`, "u-1"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.UpdateTask(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "two liters", task.Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask_IgnoresFieldsOutsideAllowList(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Buy milk", "", "pending", "u-1"))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs("Buy milk", "", "completed", "t-1").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	body := `{"status":"completed","user_id":"u-other","id":"t-other","created_at":"2020-01-01T00:00:00Z"}`
	req := mux.SetURLVars(authedRequest(http.MethodPut, "/tasks/t-1", body, "u-1"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.UpdateTask(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &task))
	assert.Equal(t, models.TaskID("t-1"), task.ID)
	assert.Equal(t, models.UserID("u-1"), task.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateTask_RejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)

	req := mux.SetURLVars(authedRequest(http.MethodPut, "/tasks/t-1", `{"title":"   "}`, "u-1"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.UpdateTask(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"msg":"Title is required"}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTask_ReturnsConfirmation(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Buy milk", "", "pending", "u-1"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks")).
		WithArgs("t-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := mux.SetURLVars(authedRequest(http.MethodDelete, "/tasks/t-1", "", "u-1"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.DeleteTask(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"msg":"Task removed"}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTask_ForeignOwner(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandler(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks")).
		WithArgs("t-1").
		WillReturnRows(taskRows("t-1", "Buy milk", "", "pending", "u-owner"))

	req := mux.SetURLVars(authedRequest(http.MethodDelete, "/tasks/t-1", "", "u-intruder"),
		map[string]string{"id": "t-1"})
	rr := httptest.NewRecorder()
	h.DeleteTask(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"msg":"Not authorized"}`, rr.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}
