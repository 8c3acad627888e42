package mediator_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/carbonshop/modules/mediator"
	"github.com/dmitrymomot/carbonshop/pkg/distlock"
	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

func newServer(t *testing.T) (*httptest.Server, *workflow.MemoryStore) {
	t.Helper()
	return newServerWithLocker(t, distlock.NewMemoryLocker(distlock.Config{}))
}

func newServerWithLocker(t *testing.T, locker distlock.Locker) (*httptest.Server, *workflow.MemoryStore) {
	t.Helper()

	store := workflow.NewMemoryStore()

	status, err := workflow.NewStatusCoordinator(store, locker)
	require.NoError(t, err)
	deletion, err := workflow.NewDeletionCoordinator(store, locker)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/mediator", mediator.New(status, deletion, store).Handle())

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

// failingLocker refuses every acquisition with a fixed error.
type failingLocker struct {
	err error
}

func (l failingLocker) Acquire(context.Context, string) (distlock.ReleaseFunc, error) {
	return nil, l.err
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func seedHTTPUser(t *testing.T, store *workflow.MemoryStore, status lifecycle.Status) *workflow.User {
	t.Helper()
	user := &workflow.User{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Sam Reyes",
		Email:     "sam@example.com",
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.SaveUser(context.Background(), user))
	return user
}

func TestRouter_ApproveUser(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	user := seedHTTPUser(t, store, lifecycle.StatusInit)

	resp := do(t, http.MethodPost, srv.URL+"/mediator/users/"+user.ID.String()+"/approve", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusApproved, got.Status)
}

func TestRouter_ApproveTwiceConflicts(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	user := seedHTTPUser(t, store, lifecycle.StatusApproved)

	resp := do(t, http.MethodPost, srv.URL+"/mediator/users/"+user.ID.String()+"/approve", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_UnknownEntity(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/mediator/users/"+uuid.NewString()+"/reject", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BadEntityID(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/mediator/users/not-a-uuid/approve", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ApproveProject(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	ctx := context.Background()

	auditor := seedHTTPUser(t, store, lifecycle.StatusApproved)
	project := &workflow.Project{
		ID:             uuid.New(),
		OwnerCompanyID: uuid.New(),
		Name:           "Peatland Rewetting",
		CreditAmount:   20000,
		Status:         lifecycle.StatusInit,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, store.SaveProject(ctx, project))

	body := fmt.Sprintf(`{"approved_by":%q}`, auditor.ID)
	resp := do(t, http.MethodPost, srv.URL+"/mediator/projects/"+project.ID.String()+"/approve", body)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := store.GetProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusApproved, got.Status)
	require.NotNil(t, got.AuditedBy)
	assert.Equal(t, auditor.ID, *got.AuditedBy)
}

func TestRouter_ApproveProject_MissingAuditor(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	project := &workflow.Project{
		ID:        uuid.New(),
		Name:      "Peatland Rewetting",
		Status:    lifecycle.StatusInit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.SaveProject(context.Background(), project))

	resp := do(t, http.MethodPost, srv.URL+"/mediator/projects/"+project.ID.String()+"/approve", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_OrderLifecycle(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	ctx := context.Background()

	mediatorUser := seedHTTPUser(t, store, lifecycle.StatusApproved)
	order := &workflow.Order{
		ID:           uuid.New(),
		ProjectID:    uuid.New(),
		CreatedBy:    uuid.New(),
		CreditAmount: 100,
		Unit:         "tCO2e",
		Price:        "9.00",
		Total:        "900.00",
		Status:       lifecycle.StatusInit,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.SaveOrder(ctx, order))

	body := fmt.Sprintf(`{"processed_by":%q}`, mediatorUser.ID)
	resp := do(t, http.MethodPost, srv.URL+"/mediator/orders/"+order.ID.String()+"/process", body)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	contract := uuid.New()
	done := fmt.Sprintf(`{"contract_file_id":%q,"cert_image_ids":[%q]}`, contract, uuid.New())
	resp = do(t, http.MethodPost, srv.URL+"/mediator/orders/"+order.ID.String()+"/done", done)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusDone, got.Status)
	assert.Equal(t, &contract, got.ContractFileID)
	assert.Len(t, got.CertImageIDs, 1)

	// DONE is terminal, a late cancel conflicts.
	resp = do(t, http.MethodPost, srv.URL+"/mediator/orders/"+order.ID.String()+"/cancel", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouter_DeleteConflictPayload(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	ctx := context.Background()

	company := &workflow.Company{
		ID:        uuid.New(),
		Name:      "Verdant Credits Ltd",
		Status:    lifecycle.StatusApproved,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.SaveCompany(ctx, company))
	member := seedHTTPUser(t, store, lifecycle.StatusApproved)
	member.CompanyID = company.ID
	require.NoError(t, store.SaveUser(ctx, member))

	resp := do(t, http.MethodDelete, srv.URL+"/mediator/companies/"+company.ID.String(), "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var payload struct {
		Key          string `json:"key"`
		ReferencedBy string `json:"referenced_by"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "company.user.company.referenced", payload.Key)
	assert.Equal(t, member.ID.String(), payload.ReferencedBy)
}

func TestRouter_DeleteUser(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	user := seedHTTPUser(t, store, lifecycle.StatusRejected)

	resp := do(t, http.MethodDelete, srv.URL+"/mediator/users/"+user.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err := store.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestRouter_InvalidJSONBody(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	order := &workflow.Order{
		ID:        uuid.New(),
		Status:    lifecycle.StatusProcessing,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, store.SaveOrder(context.Background(), order))

	resp := do(t, http.MethodPost, srv.URL+"/mediator/orders/"+order.ID.String()+"/done", "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_LockUnavailable(t *testing.T) {
	t.Parallel()

	srv, store := newServerWithLocker(t, failingLocker{err: distlock.ErrLockUnavailable})
	user := seedHTTPUser(t, store, lifecycle.StatusInit)

	resp := do(t, http.MethodPost, srv.URL+"/mediator/users/"+user.ID.String()+"/approve", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	// The entity is untouched when the lock cannot be taken.
	got, err := store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusInit, got.Status)
}

func TestRouter_LockTimeout(t *testing.T) {
	t.Parallel()

	srv, store := newServerWithLocker(t, failingLocker{err: distlock.ErrAcquireTimeout})
	user := seedHTTPUser(t, store, lifecycle.StatusRejected)

	resp := do(t, http.MethodDelete, srv.URL+"/mediator/users/"+user.ID.String(), "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

type userRow struct {
	ID     uuid.UUID        `json:"id"`
	Email  string           `json:"email"`
	Status lifecycle.Status `json:"status"`
}

func TestRouter_ListUsersByStatus(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)

	pending := make([]*workflow.User, 3)
	for i := range pending {
		pending[i] = seedHTTPUser(t, store, lifecycle.StatusInit)
	}
	seedHTTPUser(t, store, lifecycle.StatusApproved)

	resp := do(t, http.MethodGet, srv.URL+"/mediator/users?status=INIT", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []userRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, pending[i].ID, item.ID)
		assert.Equal(t, lifecycle.StatusInit, item.Status)
	}
}

func TestRouter_ListUsers_Paging(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	seeded := make([]*workflow.User, 25)
	for i := range seeded {
		seeded[i] = seedHTTPUser(t, store, lifecycle.StatusInit)
	}

	// No paging parameters: the default limit caps the page at 20.
	resp := do(t, http.MethodGet, srv.URL+"/mediator/users?status=INIT", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page []userRow
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 20)
	assert.Equal(t, seeded[0].ID, page[0].ID)

	// Offset past the first page returns the remainder.
	resp = do(t, http.MethodGet, srv.URL+"/mediator/users?status=INIT&offset=20", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 5)
	assert.Equal(t, seeded[20].ID, page[0].ID)

	// Explicit window.
	resp = do(t, http.MethodGet, srv.URL+"/mediator/users?status=INIT&offset=1&limit=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Len(t, page, 2)
	assert.Equal(t, seeded[1].ID, page[0].ID)
	assert.Equal(t, seeded[2].ID, page[1].ID)
}

func TestRouter_ListUsers_EmptyResult(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/mediator/users?status=REJECTED", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(body))
}

func TestRouter_ListUsers_BadQuery(t *testing.T) {
	t.Parallel()

	srv, _ := newServer(t)

	for _, query := range []string{
		"",                      // missing status
		"status=BOGUS",          // not a status at all
		"status=PROCESSING",     // order-only status
		"status=INIT&offset=ab", // non-numeric offset
		"status=INIT&limit=ab",  // non-numeric limit
	} {
		resp := do(t, http.MethodGet, srv.URL+"/mediator/users?"+query, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
	}
}

func TestRouter_ListOrdersByStatus(t *testing.T) {
	t.Parallel()

	srv, store := newServer(t)
	ctx := context.Background()

	processing := &workflow.Order{
		ID:           uuid.New(),
		ProjectID:    uuid.New(),
		CreatedBy:    uuid.New(),
		CreditAmount: 250,
		Unit:         "tCO2e",
		Price:        "8.50",
		Total:        "2125.00",
		Status:       lifecycle.StatusProcessing,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, store.SaveOrder(ctx, processing))
	require.NoError(t, store.SaveOrder(ctx, &workflow.Order{
		ID:        uuid.New(),
		Status:    lifecycle.StatusInit,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}))

	resp := do(t, http.MethodGet, srv.URL+"/mediator/orders?status=PROCESSING", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []struct {
		ID     uuid.UUID        `json:"id"`
		Total  string           `json:"total"`
		Status lifecycle.Status `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, processing.ID, items[0].ID)
	assert.Equal(t, "2125.00", items[0].Total)
	assert.Equal(t, lifecycle.StatusProcessing, items[0].Status)
}
