package database

import (
	"fmt"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open connects to the database selected by DB_TYPE and registers any read
// replicas listed in DB_REPLICA_DSNS.
func Open(cfg map[string]string) (Database, error) {
	dbType := config.GetString(cfg, "DB_TYPE", "postgres")
	log.Info().Str("dbType", dbType).Msg("connecting to database")

	var dialector gorm.Dialector
	switch dbType {
	case "supa":
		dialector = postgresDialector(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			config.GetString(cfg, "SUPABASE_DB_HOST", ""),
			config.GetString(cfg, "SUPABASE_DB_USER", ""),
			config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
			config.GetString(cfg, "SUPABASE_DB_NAME", ""),
			config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		))
	case "postgres":
		dsn := config.GetString(cfg, "DATABASE_URL", "")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				config.GetString(cfg, "DB_HOST", "localhost"),
				config.GetString(cfg, "DB_USER", "postgres"),
				config.GetString(cfg, "DB_PASSWORD", ""),
				config.GetString(cfg, "DB_NAME", "portfolio"),
				config.GetString(cfg, "DB_PORT", "5432"),
				config.GetString(cfg, "DB_SSLMODE", "disable"),
			)
		}
		dialector = postgresDialector(dsn)
	case "sqlite":
		dialector = sqlite.Open(config.GetString(cfg, "SQLITE_PATH", "portfolio.db"))
	default:
		return Database{}, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, NewGormConfig(logger.Warn))
	if err != nil {
		return Database{}, fmt.Errorf("connect to database: %w", err)
	}

	if replicas := config.GetStrings(cfg, "DB_REPLICA_DSNS"); len(replicas) > 0 && dbType != "sqlite" {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, dsn := range replicas {
			dialectors = append(dialectors, postgresDialector(dsn))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 25)).
			SetConnMaxIdleTime(2 * time.Minute))
		if err != nil {
			return Database{}, fmt.Errorf("register read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return Database{}, err
	}
	sqlDB.SetMaxOpenConns(config.GetInt(cfg, "DB_MAX_OPEN_CONNS", 25))
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return Database{}, fmt.Errorf("test database connection: %w", err)
	}

	return New(db), nil
}

func postgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// NewGormConfig is shared by every connection. Timestamps are always UTC and
// driver errors are translated so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewGormConfig(level logger.LogLevel) *gorm.Config {
	gormLog := log.With().Str("component", "gorm").Logger()
	return &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.New(
			&gormLog,
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}
