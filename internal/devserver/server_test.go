package devserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/goalchat/internal/api"
	"github.com/diogo/goalchat/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, models.ChatPath, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_Shapes(t *testing.T) {
	tests := []struct {
		shape Shape
		want  string
	}{
		{ShapeObject, Answer("2026 개최지")},
		{ShapeBare, Answer("2026 개최지")},
		{ShapeEmpty, models.FallbackReply},
	}

	for _, tt := range tests {
		t.Run(string(tt.shape), func(t *testing.T) {
			s := New(Options{Shape: tt.shape}, nil)
			rec := post(t, s.Handler(), `{"message": "2026 개최지는?"}`)
			require.Equal(t, http.StatusOK, rec.Code)

			reply, err := api.ParseReply(rec.Body.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestChat_Echo(t *testing.T) {
	s := New(Options{Echo: true}, nil)
	rec := post(t, s.Handler(), `{"message": "hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	reply, err := api.ParseReply(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Contains(t, reply, "hello")
}

func TestChat_MissingMessage(t *testing.T) {
	s := New(Options{}, nil)
	for _, body := range []string{`{}`, `not json`, `{"message": ""}`} {
		rec := post(t, s.Handler(), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestChat_FailEvery(t *testing.T) {
	s := New(Options{FailEvery: 2}, nil)

	assert.Equal(t, http.StatusOK, post(t, s.Handler(), `{"message":"a"}`).Code)
	assert.Equal(t, http.StatusInternalServerError, post(t, s.Handler(), `{"message":"b"}`).Code)
	assert.Equal(t, http.StatusOK, post(t, s.Handler(), `{"message":"c"}`).Code)
}

func TestChat_Delay(t *testing.T) {
	s := New(Options{Delay: 50 * time.Millisecond}, nil)

	start := time.Now()
	rec := post(t, s.Handler(), `{"message":"a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
}

func TestHealth(t *testing.T) {
	s := New(Options{}, nil)
	post(t, s.Handler(), `{"message":"a"}`)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"requests":1`)
}

func TestPreview(t *testing.T) {
	s := New(Options{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/preview?text=**a**%20%3Cb%3E", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), "<strong>a</strong> &lt;b&gt;")
}

func TestParseShape(t *testing.T) {
	for _, s := range []string{"", "object", "bare", "empty"} {
		_, err := ParseShape(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseShape("xml")
	assert.Error(t, err)
}

func TestAnswer(t *testing.T) {
	assert.Contains(t, Answer("역대 우승국은?"), "브라질")
	assert.Contains(t, Answer("Who is the top scorer?"), "클로제")
	assert.Equal(t, defaultAnswer, Answer("날씨 어때?"))
}

func TestRun_Shutdown(t *testing.T) {
	s := New(Options{}, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, "127.0.0.1:0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
