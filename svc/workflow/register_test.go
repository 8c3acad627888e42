package workflow_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/carbonshop/pkg/lifecycle"
	"github.com/dmitrymomot/carbonshop/pkg/password"
	"github.com/dmitrymomot/carbonshop/svc/workflow"
)

func TestCreateUser(t *testing.T) {
	t.Parallel()

	store := workflow.NewMemoryStore()
	hasher := password.New(bcrypt.MinCost)
	ctx := context.Background()

	user, err := workflow.CreateUser(ctx, store, hasher, workflow.NewUserParams{
		CompanyID: uuid.New(),
		Name:      "Ana Petrova",
		Email:     "ana@example.com",
		Password:  "s3cure-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusInit, user.Status)
	assert.NoError(t, hasher.Verify(user.PasswordHash, "s3cure-pass"))
	assert.Error(t, hasher.Verify(user.PasswordHash, "wrong"))

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	store := workflow.NewMemoryStore()
	hasher := password.New(bcrypt.MinCost)
	ctx := context.Background()

	_, err := workflow.CreateUser(ctx, store, hasher, workflow.NewUserParams{Email: "x@example.com", Password: "pw"})
	assert.ErrorIs(t, err, workflow.ErrNameRequired)

	_, err = workflow.CreateUser(ctx, store, hasher, workflow.NewUserParams{Name: "No Mail", Password: "pw"})
	assert.ErrorIs(t, err, workflow.ErrEmailRequired)
}

func TestCreateCompanyProjectOrder_StartAtInit(t *testing.T) {
	t.Parallel()

	store := workflow.NewMemoryStore()
	ctx := context.Background()

	company, err := workflow.CreateCompany(ctx, store, "Verdant Credits Ltd", "VC-4471")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusInit, company.Status)

	project, err := workflow.CreateProject(ctx, store, company.ID, "Mangrove Restoration", 10000)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusInit, project.Status)

	order, err := workflow.CreateOrder(ctx, store, workflow.NewOrderParams{
		ProjectID:    project.ID,
		CreatedBy:    uuid.New(),
		CreditAmount: 500,
		Unit:         "tCO2e",
		Price:        "12.50",
		Total:        "6250.00",
	})
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StatusInit, order.Status)
}
