//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/clearsolutions/user-api/test/pact"

	userserver "github.com/clearsolutions/user-api/go"
	usermemory "github.com/clearsolutions/user-api/internal/domains/users/adapters/memory"
	userobs "github.com/clearsolutions/user-api/internal/domains/users/adapters/observability"
	userapp "github.com/clearsolutions/user-api/internal/domains/users/application"
	userdomain "github.com/clearsolutions/user-api/internal/domains/users/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestUserAPIProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateUsersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetUsers(t)
			return nil, nil
		},
		pacttest.StateUserExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetUsers(t)
			if setup {
				app.seedUser(t, pacttest.ExistingUserID)
			}
			return nil, nil
		},
		pacttest.StateUserMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetUsers(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetUsers(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	repo   *usermemory.Repository
	server *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	repo := usermemory.NewRepository()
	service := userobs.New(userapp.NewService(repo, 18))

	handlers := userserver.ApiHandleFunctions{
		UserAPI: userserver.NewUserAPI(service),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = userserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		repo:   repo,
		server: server,
	}
}

func (a *contractProviderApp) resetUsers(t testing.TB) {
	t.Helper()
	users, err := a.repo.FindAll(context.Background())
	require.NoError(t, err)
	for _, user := range users {
		_ = a.repo.DeleteByID(context.Background(), user.ID)
	}
}

func (a *contractProviderApp) seedUser(t testing.TB, id int64) {
	t.Helper()
	a.repo.Seed(&userdomain.User{
		ID:        id,
		Email:     pacttest.ExampleEmail,
		FirstName: "Pact",
		LastName:  "User",
		BirthDate: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		Phone:     pacttest.ExamplePhone,
	})
}
