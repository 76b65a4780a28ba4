package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type postgresContainer struct {
	Ctx       context.Context
	Container postgres.PostgresContainer
	URI       string
}

type StdoutLogConsumer struct{}

func (lc *StdoutLogConsumer) Accept(l tc.Log) {
	if l.LogType == "STDERR" {
		_, err := fmt.Fprintln(os.Stdout, string(l.Content))
		if err != nil {
			fmt.Println("Error writing to stdout:", err)
			return
		}
	}
}

func SetupPostgres(t testing.TB) *postgresContainer {
	t.Helper()
	ctx := context.Background()

	// Ensure migration files exist
	_, err := filepath.Glob("../../sql/schema/*.sql")
	require.NoError(t, err)

	g := StdoutLogConsumer{}

	pgc, err := postgres.Run(
		ctx,
		"postgres:18.1-alpine",
		postgres.WithDatabase("tareas"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		tc.WithLogConsumerConfig(&tc.LogConsumerConfig{
			Consumers: []tc.LogConsumer{&g},
		}),
		postgres.BasicWaitStrategies(),
		tc.WithReuseByName("tareasdb-integration-tests"),
	)
	defer tc.CleanupContainer(t, pgc)
	require.NoError(t, err)

	err = pgc.Snapshot(ctx)
	require.NoError(t, err)

	dbURL, err := pgc.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return &postgresContainer{Ctx: ctx, Container: *pgc, URI: dbURL}
}

func MakeRequest(method, path, token string, body any) *http.Request {
	var buffer io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		buffer = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buffer)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// MakeFormRequest builds a form-encoded request; the login endpoint takes
// its credentials as an OAuth2-style password form, not JSON.
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// ------------------------
//  APITestClient REQUESTS
// ------------------------

type APITestClient struct {
	Mux       http.Handler
	W         *httptest.ResponseRecorder
	testState *testing.T
}

// Request records a new request, saves the response to a new recorder for
// reference, and asserts against the response status code when one is given.
func (c *APITestClient) Request(req *http.Request, expectedCode int) *http.Request {
	w := httptest.NewRecorder()
	c.Mux.ServeHTTP(w, req)
	c.W = w
	if expectedCode != 0 {
		assert.Equal(c.testState, expectedCode, c.W.Code, "unexpected status for %s %s: %s", req.Method, req.URL.Path, w.Body.String())
	}
	return req
}

func (c *APITestClient) GetJSONField(field string) (any, error) {
	res := c.W.Result()
	defer res.Body.Close()

	var body map[string]any
	decoder := json.NewDecoder(res.Body)
	decoder.UseNumber()
	err := decoder.Decode(&body)
	if err != nil {
		return nil, err
	}
	val, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %s not found in response", field)
	}

	if num, ok := val.(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return i, nil
		}
		if f, err := num.Float64(); err == nil {
			return f, nil
		}
	}

	return val, nil
}

func (c *APITestClient) GetJSONFieldAsString(field string) (string, error) {
	fieldRetrieved, err := c.GetJSONField(field)
	if err != nil {
		return "", err
	}
	if val, ok := fieldRetrieved.(string); ok {
		return val, nil
	}
	return "", fmt.Errorf("field retrieved from response was not of type string")
}

func (c *APITestClient) GetJSONFieldAsInt64(field string) (int64, error) {
	fieldRetrieved, err := c.GetJSONField(field)
	if err != nil {
		return 0, err
	}
	if val, ok := fieldRetrieved.(int64); ok {
		return val, nil
	}
	return 0, fmt.Errorf("field retrieved from response was not of type int64")
}

// GetJSONArray decodes a response whose body is a JSON array of objects.
func (c *APITestClient) GetJSONArray() ([]map[string]any, error) {
	res := c.W.Result()
	defer res.Body.Close()

	var body []map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// USER CRUD & AUTH

func (c *APITestClient) CreateUser(username, password string) *http.Request {
	return MakeRequest(http.MethodPost, "/usuarios", "", map[string]any{
		"username": username,
		"password": password,
	})
}

func (c *APITestClient) LoginUser(username, password string) *http.Request {
	return MakeFormRequest(http.MethodPost, "/usuarios/iniciar-sesion", url.Values{
		"username": []string{username},
		"password": []string{password},
	})
}

func (c *APITestClient) GetUserCount() *http.Request {
	return MakeRequest(http.MethodGet, "/admin/users/count", "", nil)
}

func (c *APITestClient) DeleteAllUsers() *http.Request {
	return MakeRequest(http.MethodPost, "/admin/reset", "", nil)
}

// CATEGORY CRUD

func (c *APITestClient) CreateCategory(token, name, description string) *http.Request {
	return MakeRequest(http.MethodPost, "/categorias", token, map[string]any{
		"name":        name,
		"description": description,
	})
}

func (c *APITestClient) GetCategories() *http.Request {
	return MakeRequest(http.MethodGet, "/categorias", "", nil)
}

func (c *APITestClient) DeleteCategory(token, categoryID string) *http.Request {
	return MakeRequest(http.MethodDelete, "/categorias/"+categoryID, token, nil)
}

// TASK CRUD

func (c *APITestClient) CreateTask(token, text, endPlannedDate string, state int, categoryID string) *http.Request {
	return MakeRequest(http.MethodPost, "/tareas", token, map[string]any{
		"text":             text,
		"end_planned_date": endPlannedDate,
		"state":            state,
		"category_id":      categoryID,
	})
}

// CreateTaskWithBody lets a test smuggle arbitrary extra fields into the
// payload, e.g. a user_id the server must ignore.
func (c *APITestClient) CreateTaskWithBody(token string, body map[string]any) *http.Request {
	return MakeRequest(http.MethodPost, "/tareas", token, body)
}

func (c *APITestClient) GetTasks(token string) *http.Request {
	return MakeRequest(http.MethodGet, "/tareas", token, nil)
}

func (c *APITestClient) UpdateTask(token, taskID string, patch map[string]any) *http.Request {
	return MakeRequest(http.MethodPut, "/tareas/"+taskID, token, patch)
}

func (c *APITestClient) DeleteTask(token, taskID string) *http.Request {
	return MakeRequest(http.MethodDelete, "/tareas/"+taskID, token, nil)
}
