package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/inkpost/internal/blogservice"
	"github.com/sushihentaime/inkpost/internal/common"
	"github.com/sushihentaime/inkpost/internal/uploadservice"
	"github.com/sushihentaime/inkpost/internal/userservice"
)

const testSecret = "test-secret"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

// fakePresigner signs nothing; it echoes the object key back in the URL.
type fakePresigner struct {
	err error
}

func (p *fakePresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if p.err != nil {
		return nil, p.err
	}

	return &v4.PresignedHTTPRequest{URL: "https://" + *params.Bucket + ".s3.amazonaws.com/" + *params.Key, Method: http.MethodPut}, nil
}

func testConfig() *Config {
	return &Config{
		Environment:    "testing",
		Version:        "1.0.0",
		TrustedOrigins: []string{"http://localhost:5173"},
		JWTSecret:      testSecret,
		AccessTokenTTL: time.Hour,
		S3Bucket:       "inkpost-media",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

// newTestApplication wires the services against a fresh postgres container.
func newTestApplication(t *testing.T) (*application, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	cfg := testConfig()
	logger := testLogger()

	mb := new(common.MockMessageProducer)
	mb.On("Publish", common.UserCreatedKey, common.UserExchange).Return(nil)

	app := &application{
		config:        cfg,
		logger:        logger,
		userService:   userservice.NewUserService(db, mb, userservice.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL), logger, "https://example.com/avatar.png"),
		blogService:   blogservice.NewBlogService(db, common.NewCache(30*time.Second, time.Minute), logger),
		uploadService: uploadservice.NewUploadService(&fakePresigner{}, cfg.S3Bucket, 0, logger),
	}

	return app, db
}

// newUnitApplication has no store behind it; only handlers that fail before
// touching a service may be exercised.
func newUnitApplication(t *testing.T, presigner uploadservice.Presigner) *application {
	cfg := testConfig()
	logger := testLogger()

	if presigner == nil {
		presigner = &fakePresigner{}
	}

	return &application{
		config:        cfg,
		logger:        logger,
		userService:   userservice.NewUserService(nil, nil, userservice.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL), logger, ""),
		uploadService: uploadservice.NewUploadService(presigner, cfg.S3Bucket, 0, logger),
	}
}

var errPresign = errors.New("presign failed")

func readResponse(t *testing.T, res *http.Response) (int, http.Header, map[string]any) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env map[string]any
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path string, body io.Reader, token string) (int, http.Header, map[string]any) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, data any, token string) (int, http.Header, map[string]any) {
	js, err := json.Marshal(data)
	require.NoError(t, err)

	return ts.do(t, http.MethodPost, path, bytes.NewReader(js), token)
}

func (ts *testServer) postRaw(t *testing.T, path, raw string) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodPost, path, bytes.NewBufferString(raw), "")
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, map[string]any) {
	return ts.do(t, http.MethodGet, path, nil, "")
}
