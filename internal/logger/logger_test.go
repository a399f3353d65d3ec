package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", "json")

	Component(l, "crm").Info("hello", "customer_id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "crm", line["component"])
	assert.EqualValues(t, 7, line["customer_id"])
}

func TestGinMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	r := gin.New()
	r.Use(GinMiddleware(NewWithWriter(&buf, "info", "json")))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"path":"/ping"`)
}

func TestGinMiddleware_KeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(GinMiddleware(Discard()))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestGormAdapter_Trace(t *testing.T) {
	var buf bytes.Buffer
	a := NewGormAdapter(NewWithWriter(&buf, "debug", "json"), 10*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	a.Trace(t.Context(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Contains(t, buf.String(), `"msg":"query"`)

	buf.Reset()
	a.Trace(t.Context(), time.Now(), sql, errors.New("boom"))
	assert.Contains(t, buf.String(), `"msg":"query error"`)

	buf.Reset()
	a.Trace(t.Context(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), `"msg":"slow query"`)
}
