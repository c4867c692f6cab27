package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientreg/internal/api/dto"
	"github.com/martijn/clientreg/internal/api/middleware"
	"github.com/martijn/clientreg/internal/infrastructure/sqlstore"
	"github.com/sirupsen/logrus"
)

// testEnv holds all test dependencies
type testEnv struct {
	db     *sqlstore.DB
	router *gin.Engine
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.New(sqlstore.DriverSQLite, ":memory:", sqlstore.Options{})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	clientRepo := sqlstore.NewClientRepository(db)

	log := logrus.New()
	log.SetOutput(io.Discard)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(log))

	RegisterClientRoutes(router, NewClientHandler(clientRepo), NewPhoneHandler(clientRepo))

	return &testEnv{db: db, router: router}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// seedClient inserts a client with a fixed registration date and returns its id
func (env *testEnv) seedClient(t *testing.T, first, last, email, register string, state bool, phones ...string) int64 {
	t.Helper()

	var id int64
	err := env.db.QueryRowx(`
		INSERT INTO clients (c_name, c_lastname, email, register, c_state)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id_client
	`, first, last, email, register, state).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed client %s: %v", email, err)
	}

	for _, phone := range phones {
		if _, err := env.db.Exec("INSERT INTO phones (id_client, phone_number) VALUES (?, ?)", id, phone); err != nil {
			t.Fatalf("failed to seed phone %s: %v", phone, err)
		}
	}
	return id
}

// seedTestData populates the database with five clients for list tests
func (env *testEnv) seedTestData(t *testing.T) {
	t.Helper()

	env.seedClient(t, "Ana", "Zapata", "ana@example.com", "2024-01-10", true, "555-0101")
	env.seedClient(t, "Bruno", "Young", "bruno@example.com", "2024-02-15", false)
	env.seedClient(t, "Carla", "Xu", "carla@example.com", "2024-03-20", true, "555-0301", "555-0302")
	env.seedClient(t, "Diego", "White", "diego@example.com", "2024-04-25", true)
	env.seedClient(t, "Elena", "Vega", "elena@example.com", "2024-05-30", false, "555-0501")
}

func (env *testEnv) countPhones(t *testing.T, clientID int64) int {
	t.Helper()

	var n int
	if err := env.db.Get(&n, "SELECT COUNT(*) FROM phones WHERE id_client = ?", clientID); err != nil {
		t.Fatalf("failed to count phones: %v", err)
	}
	return n
}

// makeRequest performs a GET request and returns the response
func (env *testEnv) makeRequest(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return env.doRequest(t, http.MethodGet, path, nil)
}

// doRequest performs a request with an optional JSON body
func (env *testEnv) doRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// parseResponse decodes the response body into v
func parseResponse(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	parseResponse(t, w, &resp)
	return resp
}

// ptr is a helper to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
