package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, body string) *Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return &Request{Request: req}
}

func TestDecodeBody(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		require.NoError(t, newRequest(t, `{"email":"ada@example.com"}`).DecodeBody(&p))
		assert.Equal(t, "ada@example.com", p.Email)
	})

	t.Run("unknown field", func(t *testing.T) {
		var p payload
		assert.Error(t, newRequest(t, `{"email":"a@b.c","extra":1}`).DecodeBody(&p))
	})

	t.Run("trailing garbage", func(t *testing.T) {
		var p payload
		assert.Error(t, newRequest(t, `{"email":"a@b.c"}{"email":"x@y.z"}`).DecodeBody(&p))
	})

	t.Run("malformed json", func(t *testing.T) {
		var p payload
		assert.Error(t, newRequest(t, `{"email":`).DecodeBody(&p))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"Basic abc123", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tc := range tests {
		r := newRequest(t, "")
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, r.BearerToken(), "header %q", tc.header)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("first"), mw("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}
