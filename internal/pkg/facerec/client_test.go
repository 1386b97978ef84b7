package facerec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestVerifyFace_Match(t *testing.T) {
	srv := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify-face", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "emp-1", r.FormValue("employee_id"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "capture.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "verified": true, "distance": 0.31}`))
	})

	client := NewHTTPClient(srv.URL, 5*time.Second)
	verified, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	require.NoError(t, err)
	assert.True(t, verified)
}

func TestVerifyFace_NoMatch(t *testing.T) {
	srv := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "verified": false, "distance": 0.92}`))
	})

	client := NewHTTPClient(srv.URL, 5*time.Second)
	verified, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyFace_UnregisteredFaceIsNoMatch(t *testing.T) {
	srv := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no face registered", http.StatusNotFound)
	})

	client := NewHTTPClient(srv.URL, 5*time.Second)
	verified, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	require.NoError(t, err)
	assert.False(t, verified)
}

func TestVerifyFace_ServerErrorIsTransportFailure(t *testing.T) {
	srv := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	})

	client := NewHTTPClient(srv.URL, 5*time.Second)
	_, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	assert.Error(t, err)
}

func TestVerifyFace_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	srv := newVerifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	})

	client := NewHTTPClient(srv.URL, 5*time.Second)
	for i := 0; i < 10; i++ {
		_, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
		require.Error(t, err)
	}

	// The breaker is open now; the request fails without reaching the server.
	srv.Close()
	_, err := client.VerifyFace(context.Background(), "emp-1", strings.NewReader("jpegbytes"), "capture.jpg")
	assert.Error(t, err)
}
