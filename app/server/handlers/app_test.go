package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"library-catalog/app/server/auth"
	"library-catalog/app/server/inits"
	"library-catalog/app/server/jwt"
	"library-catalog/app/server/metrics"
	"library-catalog/app/server/stores"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testContainer = "covers"

type memBlob struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
}

func newMemBlob() *memBlob {
	return &memBlob{objects: map[string][]byte{}}
}

func (m *memBlob) UploadBlob(_ context.Context, name, container string, body io.Reader, _ string) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[container+"/"+name] = data
	return "http://blob.test/" + container + "/" + name, nil
}

func (m *memBlob) DeleteBlob(_ context.Context, name, container string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, container+"/"+name)
	return nil
}

func (m *memBlob) has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.objects {
		if "http://blob.test/"+key == url {
			return true
		}
	}
	return false
}

type testEnv struct {
	e    *echo.Echo
	db   *gorm.DB
	mr   *miniredis.Miniredis
	blob *memBlob
	jwt  *jwt.JWT
	m    *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, inits.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	j, err := jwt.New("handlers-test-signing-key")
	require.NoError(t, err)

	accounts := stores.NewAccounts(db).WithParams(&argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	authService, err := auth.NewService(accounts, j)
	require.NoError(t, err)

	env := &testEnv{
		db:   db,
		mr:   mr,
		blob: newMemBlob(),
		jwt:  j,
		m:    metrics.New(),
	}

	app := NewApp(Deps{
		Logger:    zap.NewNop(),
		DB:        db,
		Redis:     rdb,
		JWT:       j,
		Auth:      authService,
		Blob:      env.blob,
		Container: testContainer,
		Metrics:   env.m,
	})

	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = app.HTTPErrorHandler
	app.RegisterHandlers(e)
	env.e = e

	return env
}

type envelope struct {
	StatusCode    int             `json:"statusCode"`
	IsSuccess     bool            `json:"isSuccess"`
	ErrorMessages []string        `json:"errorMessages"`
	Result        json.RawMessage `json:"result"`
}

func (env *testEnv) do(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	var body envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, &body
}

func (env *testEnv) json(t *testing.T, method, target string, payload any, token string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if payload != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return env.do(t, req, token)
}

// register 并登录，返回令牌
func (env *testEnv) login(t *testing.T, email, name, role string) string {
	t.Helper()
	rec, _ := env.json(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "password": "secret", "name": name, "role": role,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, body := env.json(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Result, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

type bookFields struct {
	name        string
	description string
	authorID    uint
	categoryIDs []uint
	filename    string
	cover       []byte
}

func (env *testEnv) multipart(t *testing.T, method, target string, f bookFields, token string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("name", f.name))
	require.NoError(t, w.WriteField("description", f.description))
	require.NoError(t, w.WriteField("authorId", strconv.FormatUint(uint64(f.authorID), 10)))
	for _, id := range f.categoryIDs {
		require.NoError(t, w.WriteField("categoryId", strconv.FormatUint(uint64(id), 10)))
	}
	if f.filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, f.filename))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.cover)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return env.do(t, req, token)
}

func decodeResult[T any](t *testing.T, body *envelope) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(body.Result, &res), string(body.Result))
	return res
}
