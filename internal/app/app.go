package app

import (
	"context"
	"fmt"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/config"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type App struct {
	Config *config.Config
	DB     *db.PGProvider
	Remote *db.RemoteProvider

	Zones         repositories.ZoneRepository
	Projects      repositories.ProjectRepository
	Units         repositories.UnitRepository
	Users         repositories.UserRepository
	Conversations repositories.ConversationRepository
}

// NewApp builds both providers and the per-entity repositories. When any
// entity is served from PostgreSQL and DB_URL is set, it waits for the
// database and optionally applies migrations. Missing credentials are not
// fatal: the affected endpoints answer 503 until they are supplied.
func NewApp(cfg *config.Config) (*App, error) {
	pg, err := db.NewPGProvider(cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	remote := db.NewRemoteProvider(db.RemoteConfig{
		URL:     cfg.SupabaseURL,
		APIKey:  cfg.SupabaseAPIKey,
		Bearer:  cfg.SupabaseBearer,
		Timeout: cfg.SupabaseTimeout,
	}, nil)

	if cfg.Backends.Uses(repositories.BackendPostgres) {
		if !pg.Configured() {
			utils.Logger.Warn("DB_URL is not set; PostgreSQL-backed endpoints will answer 503")
		} else {
			if err := pg.WaitUntilReady(context.Background()); err != nil {
				pg.Close()
				return nil, err
			}
			if cfg.DBMigrateOnStart {
				if err := db.Migrate(pg); err != nil {
					pg.Close()
					return nil, fmt.Errorf("migrating database: %w", err)
				}
			}
		}
	}
	if cfg.Backends.Uses(repositories.BackendRemote) && !remote.Configured() {
		utils.Logger.Warn("SUPABASE_URL or SUPABASE_APIKEY is not set; remote-backed endpoints will answer 503")
	}

	stores := repositories.Stores{Postgres: pg, Remote: remote}
	return &App{
		Config:        cfg,
		DB:            pg,
		Remote:        remote,
		Zones:         repositories.NewZoneRepository(cfg.Backends.Zones, stores),
		Projects:      repositories.NewProjectRepository(cfg.Backends.Projects, stores),
		Units:         repositories.NewUnitRepository(cfg.Backends.Units, stores),
		Users:         repositories.NewUserRepository(cfg.Backends.Users, stores),
		Conversations: repositories.NewConversationRepository(cfg.Backends.Conversations, stores),
	}, nil
}

// PingBackends probes every backend at least one entity is served from.
func (a *App) PingBackends(ctx context.Context) map[string]error {
	out := map[string]error{}
	if a.Config.Backends.Uses(repositories.BackendPostgres) {
		out[db.BackendPostgres] = a.DB.Ping(ctx)
	}
	if a.Config.Backends.Uses(repositories.BackendRemote) {
		out[db.BackendRemote] = a.Remote.Ping(ctx)
	}
	return out
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
