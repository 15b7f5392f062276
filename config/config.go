// Package config loads the service configuration from YAML files with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Firebase holds the project identity shared by the Firestore and
	// Auth clients.
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Firestore names the documents this service owns.
	Firestore FirestoreConfig `json:"firestore" yaml:"firestore"`

	// Auth configures admin resolution. An empty AdminUID means every
	// signed-in identity is treated as admin; that is the documented
	// behavior of the original site, kept as-is rather than hardened.
	Auth AuthConfig `json:"auth" yaml:"auth"`

	// Gate configures the human-verification gate.
	Gate GateConfig `json:"gate" yaml:"gate"`

	// Storage configures the thumbnail blob bucket.
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Session configures the in-memory session store.
	Session SessionConfig `json:"session" yaml:"session"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines the Firebase project used for identity and data.
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`

	// WebAPIKey is the browser SDK key; with it set the page offers the
	// provider sign-in popup. Empty disables browser sign-in, leaving
	// the JSON API as the only way to establish an identity.
	WebAPIKey  string `json:"webApiKey" yaml:"webApiKey"`
	AuthDomain string `json:"authDomain" yaml:"authDomain"`
}

// FirestoreConfig defines collection and document names.
type FirestoreConfig struct {
	ProjectsCollection string `json:"projectsCollection" yaml:"projectsCollection"`
	ProfileCollection  string `json:"profileCollection" yaml:"profileCollection"`
	ProfileDocID       string `json:"profileDocId" yaml:"profileDocId"`
}

// AuthConfig defines admin resolution settings.
type AuthConfig struct {
	AdminUID string `json:"adminUid" yaml:"adminUid"`
}

// GateConfig defines the verification gate settings.
type GateConfig struct {
	// TurnstileSecret is the Cloudflare Turnstile server-side secret.
	// Empty means challenge verification is disabled (dev mode): any
	// non-empty token passes.
	TurnstileSecret string `json:"turnstileSecret" yaml:"turnstileSecret"`

	// RescueInterval and RescueAttempts bound the fallback poll that
	// unlocks a session whose success callback never fired.
	RescueInterval time.Duration `json:"rescueInterval" yaml:"rescueInterval"`
	RescueAttempts int           `json:"rescueAttempts" yaml:"rescueAttempts"`
}

// StorageConfig defines the blob bucket for uploaded thumbnails.
type StorageConfig struct {
	// BucketURL is a gocloud.dev bucket URL, e.g. "file:///var/folio/uploads"
	// or "gs://folio-thumbnails".
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL prefixes the stored key to form the durable
	// download URL written into the project record.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`
}

// SessionConfig defines session store settings.
type SessionConfig struct {
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

const (
	defaultRescueInterval = 400 * time.Millisecond
	defaultRescueAttempts = 25
	defaultSessionTTL     = 12 * time.Hour
)

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables, aligning each ENV_VAR segment with the
	// existing YAML keys so GATE_TURNSTILESECRET lands on
	// gate.turnstileSecret rather than gate.turnstilesecret.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.Gate.RescueInterval <= 0 {
		cfg.Gate.RescueInterval = defaultRescueInterval
	}
	if cfg.Gate.RescueAttempts <= 0 {
		cfg.Gate.RescueAttempts = defaultRescueAttempts
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = defaultSessionTTL
	}
	if cfg.Firestore.ProjectsCollection == "" {
		cfg.Firestore.ProjectsCollection = "projects"
	}
	if cfg.Firestore.ProfileCollection == "" {
		cfg.Firestore.ProfileCollection = "profile"
	}
	if cfg.Firestore.ProfileDocID == "" {
		cfg.Firestore.ProfileDocID = "main"
	}
	if cfg.Firebase != nil && cfg.Firebase.WebAPIKey != "" && cfg.Firebase.AuthDomain == "" {
		cfg.Firebase.AuthDomain = cfg.Firebase.ProjectID + ".firebaseapp.com"
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
