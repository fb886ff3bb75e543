package provision

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/marcelsud/webhook-dispatch/webhook"
	"gopkg.in/yaml.v3"
)

/* Loader manages pre-provisioned endpoint configuration from endpoints.yaml
 * Static endpoints are used for internal consumers whose secrets are managed
 * out of band; dynamically registered endpoints go through the Registry
 */

// Config represents the structure of endpoints.yaml
type Config struct {
	Endpoints []EndpointConfig `yaml:"endpoints"`
}

// EndpointConfig represents a single pre-provisioned endpoint in the YAML file
type EndpointConfig struct {
	ID       string   `yaml:"id"`
	Platform string   `yaml:"platform"`
	URL      string   `yaml:"url"`
	Events   []string `yaml:"events"`
	Secret   string   `yaml:"secret"`
	Active   *bool    `yaml:"active"` // Default: true
}

// Loader holds the loaded endpoint configuration
type Loader struct {
	endpoints []webhook.Endpoint
}

// NewLoader creates a new endpoint loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the endpoints.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading endpoints file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing endpoints YAML: %w", err)
	}

	for _, ec := range config.Endpoints {
		endpoint, err := convert(ec)
		if err != nil {
			return fmt.Errorf("validating endpoint %q: %w", ec.ID, err)
		}
		l.endpoints = append(l.endpoints, endpoint)
	}

	return nil
}

// List returns the loaded endpoints
func (l *Loader) List() []webhook.Endpoint {
	return l.endpoints
}

// Apply upserts every loaded endpoint into the repository
func (l *Loader) Apply(ctx context.Context, repo webhook.EndpointWriter) error {
	for _, endpoint := range l.endpoints {
		if _, err := repo.CreateEndpoint(ctx, endpoint); err != nil {
			return fmt.Errorf("provisioning endpoint %q: %w", endpoint.ID, err)
		}
	}
	return nil
}

func convert(ec EndpointConfig) (webhook.Endpoint, error) {
	if ec.ID == "" {
		return webhook.Endpoint{}, fmt.Errorf("id is required")
	}
	if ec.Secret == "" {
		return webhook.Endpoint{}, fmt.Errorf("secret is required")
	}

	parsed, err := url.Parse(ec.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return webhook.Endpoint{}, fmt.Errorf("%w: %s", webhook.ErrInvalidEndpointURL, ec.URL)
	}

	if len(ec.Events) == 0 {
		return webhook.Endpoint{}, webhook.ErrNoEventsSpecified
	}

	events := make([]webhook.EventType, 0, len(ec.Events))
	for _, e := range ec.Events {
		event := webhook.EventType(e)
		if err := event.Validate(); err != nil {
			return webhook.Endpoint{}, fmt.Errorf("%w: %s", webhook.ErrInvalidEventType, e)
		}
		events = append(events, event)
	}

	active := true
	if ec.Active != nil {
		active = *ec.Active
	}

	return webhook.Endpoint{
		ID:        ec.ID,
		Platform:  ec.Platform,
		URL:       ec.URL,
		Events:    events,
		Secret:    ec.Secret,
		IsActive:  active,
		CreatedAt: time.Now(),
	}, nil
}
