package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barangayconnect/internal/common"
)

func TestHTTPTransporter_SuccessDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransporter(5*time.Second, nil)
	resp, err := tr.Execute(context.Background(), "get", srv.URL+"/ping", nil, Options{})
	require.NoError(t, err)

	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, resp.DecodeJSON(&out))
	assert.EqualValues(t, 42, out.ID)
}

func TestHTTPTransporter_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransporter(5*time.Second, func() string { return "tok123" })
	_, err := tr.Execute(context.Background(), "get", srv.URL, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestHTTPTransporter_DetailBecomesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Contact already registered"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransporter(5*time.Second, nil)
	_, err := tr.Execute(context.Background(), "post", srv.URL+"/users/", map[string]any{}, Options{})
	require.Error(t, err)

	var berr *common.BackendError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, http.StatusBadRequest, berr.Status)
	assert.Equal(t, "Contact already registered", berr.Error())
}

func TestHTTPTransporter_DefaultMessageWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := NewHTTPTransporter(5*time.Second, nil)
	_, err := tr.Execute(context.Background(), "get", srv.URL, nil, Options{})

	var berr *common.BackendError
	require.True(t, errors.As(err, &berr))
	assert.Contains(t, berr.Error(), "try again later")
}

func TestHTTPTransporter_ConnectionFailureIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	tr := NewHTTPTransporter(time.Second, nil)
	_, err := tr.Execute(context.Background(), "get", srv.URL, nil, Options{})
	require.ErrorIs(t, err, common.ErrUnreachable)
}
