package utilities

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	consul "github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	mu           sync.Mutex
	registered   *consul.AgentServiceRegistration
	deregistered string
}

func (a *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch {
	case r.URL.Path == "/v1/agent/service/register":
		var reg consul.AgentServiceRegistration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		a.registered = &reg
	case strings.HasPrefix(r.URL.Path, "/v1/agent/service/deregister/"):
		a.deregistered = strings.TrimPrefix(r.URL.Path, "/v1/agent/service/deregister/")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestConsulRegistrar(t *testing.T) {
	agent := &fakeAgent{}
	srv := httptest.NewServer(agent)
	defer srv.Close()

	registrar, err := NewConsulRegistrar(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)

	require.NoError(t, registrar.Register(ServiceRegistration{
		ID:         "account-service-1",
		Name:       "account-service",
		Address:    ":8080",
		Tags:       []string{"http"},
		HealthPath: "/healthz",
	}))

	require.NotNil(t, agent.registered)
	assert.Equal(t, "account-service", agent.registered.Name)
	assert.Equal(t, "127.0.0.1", agent.registered.Address)
	assert.Equal(t, 8080, agent.registered.Port)
	require.NotNil(t, agent.registered.Check)
	assert.Equal(t, "http://127.0.0.1:8080/healthz", agent.registered.Check.HTTP)

	require.NoError(t, registrar.Deregister("account-service-1"))
	assert.Equal(t, "account-service-1", agent.deregistered)
}

func TestConsulRegistrar_InvalidAddress(t *testing.T) {
	registrar, err := NewConsulRegistrar("127.0.0.1:8500")
	require.NoError(t, err)

	err = registrar.Register(ServiceRegistration{ID: "x", Name: "x", Address: "no-port"})
	assert.Error(t, err)
}
