package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type Config struct {
	AppName string
	AppPort string
	AppUrl  string
	Env     string

	DBUrl            string
	DBMigrateOnStart bool

	SupabaseURL     string
	SupabaseAPIKey  string
	SupabaseBearer  string
	SupabaseTimeout time.Duration

	Backends Backends

	LDFlag_SeedDbWithTestData bool
	LDFlag_CORSHighSecurity   bool
}

// Backends selects the store each entity is served from.
type Backends struct {
	Zones         repositories.Backend
	Projects      repositories.Backend
	Units         repositories.Backend
	Users         repositories.Backend
	Conversations repositories.Backend
}

// Uses reports whether any entity is served from b.
func (b Backends) Uses(kind repositories.Backend) bool {
	for _, v := range []repositories.Backend{b.Zones, b.Projects, b.Units, b.Users, b.Conversations} {
		if v == kind {
			return true
		}
	}
	return false
}

const LDConnectionTimeout = 5 * time.Second

var AppName = "inventory-service"

type env struct {
	Env     string `env:"ENV,default=dev"`
	AppPort string `env:"APP_PORT,default=8080"`
	AppUrl  string `env:"APP_URL_FROM_ANYWHERE,default=http://localhost:8080"`

	DBUrl            string `env:"DB_URL"`
	DBMigrateOnStart bool   `env:"DB_MIGRATE_ON_START,default=false,strict"`

	SupabaseURL     string        `env:"SUPABASE_URL"`
	SupabaseAPIKey  string        `env:"SUPABASE_APIKEY"`
	SupabaseBearer  string        `env:"SUPABASE_BEARER"`
	SupabaseTimeout time.Duration `env:"SUPABASE_TIMEOUT,default=30s,strict"`

	ZonesBackend         repositories.Backend `env:"ZONES_BACKEND,default=postgres"`
	ProjectsBackend      repositories.Backend `env:"PROJECTS_BACKEND,default=postgres"`
	UnitsBackend         repositories.Backend `env:"UNITS_BACKEND,default=postgres"`
	UsersBackend         repositories.Backend `env:"USERS_BACKEND,default=postgres"`
	ConversationsBackend repositories.Backend `env:"CONVERSATIONS_BACKEND,default=postgres"`

	SeedDbWithTestData bool `env:"SEED_DB_WITH_TEST_DATA,default=false,strict"`
	CORSHighSecurity   bool `env:"CORS_HIGH_SECURITY,default=false,strict"`

	LDSDKKey            string `env:"LD_SDK_KEY"`
	LDServerContextKey  string `env:"LD_SERVER_CONTEXT_KEY,default=inventory-service"`
	LDServerContextKind string `env:"LD_SERVER_CONTEXT_KIND,default=service"`

	BWSAccessToken string `env:"BWS_ACCESS_TOKEN"`
	BWSOrgID       string `env:"BWS_ORG_ID"`
}

// secretsSource is the part of the Bitwarden client config needs.
type secretsSource interface {
	GetBWSSecrets(projectName string) (map[string]string, error)
	Close()
}

var newSecretsSource = func(accessToken, orgID string) (secretsSource, error) {
	c, err := utils.NewBWSSecretsClient(accessToken, orgID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Load builds the configuration from an optional .env file, the process
// environment, Bitwarden secrets and LaunchDarkly flags, in that order.
// Missing store credentials are not an error here; they surface on the
// first acquire.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	var e env
	if err := envdecode.Decode(&e); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decoding environment: %w", err)
	}

	if e.BWSAccessToken != "" {
		if err := overlaySecrets(&e, fmt.Sprintf("%s-%s", AppName, e.Env)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		AppName:          AppName,
		AppPort:          e.AppPort,
		AppUrl:           e.AppUrl,
		Env:              e.Env,
		DBUrl:            e.DBUrl,
		DBMigrateOnStart: e.DBMigrateOnStart,
		SupabaseURL:      e.SupabaseURL,
		SupabaseAPIKey:   e.SupabaseAPIKey,
		SupabaseBearer:   e.SupabaseBearer,
		SupabaseTimeout:  e.SupabaseTimeout,
		Backends: Backends{
			Zones:         e.ZonesBackend,
			Projects:      e.ProjectsBackend,
			Units:         e.UnitsBackend,
			Users:         e.UsersBackend,
			Conversations: e.ConversationsBackend,
		},
		LDFlag_SeedDbWithTestData: e.SeedDbWithTestData,
		LDFlag_CORSHighSecurity:   e.CORSHighSecurity,
	}

	if e.LDSDKKey != "" {
		if err := loadFlags(cfg, e); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadConfig is Load for main: any failure is fatal.
func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)
	cfg, err := Load()
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to load config")
	}
	utils.Logger.Debugf("backends: zones=%s projects=%s units=%s users=%s conversations=%s",
		cfg.Backends.Zones, cfg.Backends.Projects, cfg.Backends.Units, cfg.Backends.Users, cfg.Backends.Conversations)
	return cfg
}

// overlaySecrets replaces store credentials with the ones kept in the
// Bitwarden project named projectName. Absent keys keep their env value.
func overlaySecrets(e *env, projectName string) error {
	client, err := newSecretsSource(e.BWSAccessToken, e.BWSOrgID)
	if err != nil {
		return fmt.Errorf("initializing BWS client: %w", err)
	}
	defer client.Close()

	secrets, err := client.GetBWSSecrets(projectName)
	if err != nil {
		return fmt.Errorf("fetching BWS secrets (%s): %w", projectName, err)
	}

	for key, dst := range map[string]*string{
		"DB_URL":          &e.DBUrl,
		"SUPABASE_URL":    &e.SupabaseURL,
		"SUPABASE_APIKEY": &e.SupabaseAPIKey,
		"SUPABASE_BEARER": &e.SupabaseBearer,
		"LD_SDK_KEY":      &e.LDSDKKey,
	} {
		if v, ok := secrets[key]; ok && v != "" {
			*dst = v
		}
	}
	return nil
}

func loadFlags(cfg *Config, e env) error {
	ldClient, err := ld.MakeClient(e.LDSDKKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("creating LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()

	ctx := ldcontext.NewWithKind(ldcontext.Kind(e.LDServerContextKind), e.LDServerContextKey)

	seed, err := ldClient.BoolVariation("seed_db_with_test_data", ctx, cfg.LDFlag_SeedDbWithTestData)
	if err != nil {
		return fmt.Errorf("retrieving seed_db_with_test_data flag: %w", err)
	}
	utils.Logger.Debugf("seed_db_with_test_data flag: %t", seed)

	corsHigh, err := ldClient.BoolVariation("cors_high_security", ctx, cfg.LDFlag_CORSHighSecurity)
	if err != nil {
		return fmt.Errorf("retrieving cors_high_security flag: %w", err)
	}
	utils.Logger.Debugf("cors_high_security flag: %t", corsHigh)

	cfg.LDFlag_SeedDbWithTestData = seed
	cfg.LDFlag_CORSHighSecurity = corsHigh
	return nil
}
