package utilities

import (
	"fmt"
	"net"
	"strconv"

	consul "github.com/hashicorp/consul/api"
)

// ServiceRegistration describes an HTTP service announced to Consul.
type ServiceRegistration struct {
	ID         string
	Name       string
	Address    string
	Tags       []string
	HealthPath string
}

// ConsulRegistrar registers and deregisters a service with a Consul agent.
type ConsulRegistrar struct {
	client *consul.Client
}

// NewConsulRegistrar creates a registrar for the agent at addr.
func NewConsulRegistrar(addr string) (*ConsulRegistrar, error) {
	cfg := consul.DefaultConfig()
	cfg.Address = addr

	client, err := consul.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return &ConsulRegistrar{client: client}, nil
}

// Register announces the service with an HTTP health check on HealthPath.
func (r *ConsulRegistrar) Register(reg ServiceRegistration) error {
	host, portStr, err := net.SplitHostPort(reg.Address)
	if err != nil {
		return fmt.Errorf("invalid service address %q: %w", reg.Address, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid service port %q: %w", portStr, err)
	}

	if host == "" {
		host = "127.0.0.1"
	}

	registration := &consul.AgentServiceRegistration{
		ID:      reg.ID,
		Name:    reg.Name,
		Address: host,
		Port:    port,
		Tags:    reg.Tags,
	}

	if reg.HealthPath != "" {
		registration.Check = &consul.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s%s", net.JoinHostPort(host, portStr), reg.HealthPath),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		}
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	return nil
}

// Deregister removes the service from the agent.
func (r *ConsulRegistrar) Deregister(id string) error {
	if err := r.client.Agent().ServiceDeregister(id); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	return nil
}
