// Package profile loads Faculty credentials and service endpoints.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding profile file values.
const (
	EnvProfilePath  = "FACULTY_PROFILE"
	EnvDomain       = "FACULTY_DOMAIN"
	EnvProtocol     = "FACULTY_PROTOCOL"
	EnvClientID     = "FACULTY_CLIENT_ID"
	EnvClientSecret = "FACULTY_CLIENT_SECRET"
)

// Profile holds the credentials and endpoints for one Faculty deployment.
type Profile struct {
	Domain       string `yaml:"domain"`
	Protocol     string `yaml:"protocol"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// TokenURL returns the auth service token endpoint for the profile.
func (p *Profile) TokenURL() string {
	return fmt.Sprintf("%s://hudson.%s/access_token", p.Protocol, p.Domain)
}

// Load reads a profile from a yaml file. ${VAR} references in the file
// are expanded from the environment before parsing.
func Load(path string) (*Profile, error) {
	// #nosec G304 -- path is from CLI args or the user's own environment
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}

	data = []byte(expandEnvVars(string(data)))

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}

	applyDefaults(&p)
	applyEnvOverrides(&p)

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadDefault loads the profile named by FACULTY_PROFILE, falling back
// to ~/.config/faculty/profile.yaml.
func LoadDefault() (*Profile, error) {
	if path := os.Getenv(EnvProfilePath); path != "" {
		return Load(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return Load(filepath.Join(home, ".config", "faculty", "profile.yaml"))
}

func applyDefaults(p *Profile) {
	if p.Protocol == "" {
		p.Protocol = "https"
	}
}

func applyEnvOverrides(p *Profile) {
	if v := os.Getenv(EnvDomain); v != "" {
		p.Domain = v
	}
	if v := os.Getenv(EnvProtocol); v != "" {
		p.Protocol = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		p.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		p.ClientSecret = v
	}
}

func (p *Profile) validate() error {
	if p.Domain == "" {
		return fmt.Errorf("profile is missing a domain")
	}
	if p.ClientID == "" || p.ClientSecret == "" {
		return fmt.Errorf("profile is missing client credentials")
	}
	return nil
}

func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}
