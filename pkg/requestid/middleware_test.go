package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/carbonshop/pkg/requestid"
)

func capture(t *testing.T, req *http.Request) (string, *httptest.ResponseRecorder) {
	t.Helper()
	var fromCtx string
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = requestid.FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return fromCtx, rec
}

func TestMiddleware_GeneratesID(t *testing.T) {
	t.Parallel()

	id, rec := capture(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, rec.Header().Get(requestid.Header))
}

func TestMiddleware_KeepsValidClientID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "client-supplied_42")

	id, rec := capture(t, req)
	assert.Equal(t, "client-supplied_42", id)
	assert.Equal(t, "client-supplied_42", rec.Header().Get(requestid.Header))
}

func TestMiddleware_ReplacesGarbageID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.Header, "not valid\nat all")

	id, _ := capture(t, req)
	assert.NotEqual(t, "not valid\nat all", id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestFromContext_Missing(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(t.Context()))
}
