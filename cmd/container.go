// cmd/container.go
//
// Root composition root. Owns infrastructure (job store, file storage,
// e-mail) and composes the FAQ container. This is the only place that knows
// about every backend.
package main

import (
	"context"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqcontainer"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/faqgen/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxredis"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxsql"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
	"github.com/Abraxas-365/faqgen/pkg/notifx/notifxconsole"
	"github.com/Abraxas-365/faqgen/pkg/notifx/notifxses"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Container holds shared infrastructure and the composed FAQ module.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	Store      jobx.Store
	FileSystem fsx.FileSystem
	S3Client   *s3.Client
	Email      *notifx.Client

	// Bounded-context containers
	FAQ *faqcontainer.Container
}

// NewContainer connects every backend and wires the FAQ module. On error
// the already opened connections are closed.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logx.Info("🔧 Initializing application container...")

	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}
	if err := c.initModules(ctx, faqcontainer.Deps{}); err != nil {
		c.Cleanup()
		return nil, err
	}

	logx.Info("✅ Application container initialized")
	return c, nil
}

// ---------------------------------------------------------------------------
// Infrastructure: job store, file storage, e-mail
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure(ctx context.Context) error {
	logx.Info("🏗️ Initializing infrastructure...")

	if err := c.initStore(ctx); err != nil {
		return err
	}
	if err := c.initFileStorage(ctx); err != nil {
		return err
	}
	if err := c.initEmail(ctx); err != nil {
		return err
	}

	logx.Info("✅ Infrastructure initialized")
	return nil
}

func (c *Container) storeOptions() []jobx.StoreOption {
	return []jobx.StoreOption{
		jobx.WithTTL(c.Config.Store.TTL),
		jobx.WithKeyPrefix(c.Config.Store.KeyPrefix),
	}
}

func (c *Container) initStore(ctx context.Context) error {
	cfg := c.Config

	switch cfg.Store.Driver {
	case "memory":
		c.Store = jobxmemory.NewMemoryStore(c.storeOptions()...)
		logx.Warn("  ⚠️  In-memory job store: results are lost on restart")

	case "redis":
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := c.Redis.Ping(ctx).Result(); err != nil {
			return errx.Wrapf(err, errx.TypeUnavailable, "failed to connect to Redis at %s", cfg.Redis.Addr())
		}
		c.Store = jobxredis.NewRedisStore(c.Redis, c.storeOptions()...)
		logx.Infof("  ✅ Redis job store connected (%s)", cfg.Redis.Addr())

	case "sqlite", "postgres":
		driver, dsn := "sqlite", cfg.Database.SQLitePath
		if cfg.Store.Driver == "postgres" {
			driver, dsn = "postgres", cfg.Database.PostgresDSN()
		}
		db, err := sqlx.ConnectContext(ctx, driver, dsn)
		if err != nil {
			return errx.Wrapf(err, errx.TypeUnavailable, "failed to connect to %s database", driver)
		}
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		if driver == "sqlite" {
			// One writer at a time; avoids SQLITE_BUSY under concurrent jobs.
			db.SetMaxOpenConns(1)
		}
		c.DB = db

		store := jobxsql.NewSQLStore(db, c.storeOptions()...)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		c.Store = store
		logx.Infof("  ✅ %s job store ready", driver)

	default:
		return errx.New("unknown JOB_STORE: "+cfg.Store.Driver, errx.TypeValidation)
	}
	return nil
}

func (c *Container) initFileStorage(ctx context.Context) error {
	cfg := c.Config.Storage

	switch cfg.Mode {
	case "s3":
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return errx.Wrap(err, "unable to load AWS SDK config", errx.TypeInternal)
		}
		c.S3Client = s3.NewFromConfig(awsCfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, cfg.S3Bucket, cfg.S3Prefix)
		logx.Infof("  ✅ S3 file system configured (bucket: %s, region: %s)", cfg.S3Bucket, cfg.AWSRegion)

	case "local":
		localFS, err := fsxlocal.NewLocalFileSystem(cfg.LocalPath)
		if err != nil {
			return err
		}
		c.FileSystem = localFS
		logx.Infof("  ✅ Local file system configured (path: %s)", cfg.LocalPath)

	default:
		return errx.New("unknown STORAGE_MODE: "+cfg.Mode+" (use 'local' or 's3')", errx.TypeValidation)
	}
	return nil
}

func (c *Container) initEmail(ctx context.Context) error {
	cfg := c.Config.Notifx
	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = cfg.FromName + " <" + cfg.FromAddress + ">"
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		logx.Info("  ℹ️  E-mail notifications disabled")
		return nil

	case "console":
		c.Email = notifx.NewClient(notifxconsole.NewConsoleProvider(c.Config.Server.Debug), from)
		logx.Info("  ✅ Console e-mail provider configured")

	case "ses":
		awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return errx.Wrap(err, "unable to load AWS SDK config", errx.TypeInternal)
		}
		c.Email = notifx.NewClient(notifxses.NewSESProvider(ses.NewFromConfig(awsCfg), from), from)
		logx.Infof("  ✅ SES e-mail provider configured (region: %s)", cfg.AWSRegion)

	default:
		return errx.New("unknown NOTIFX_PROVIDER: "+cfg.Provider+" (use 'console' or 'ses')", errx.TypeValidation)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Module composition
// ---------------------------------------------------------------------------

func (c *Container) initModules(ctx context.Context, deps faqcontainer.Deps) error {
	logx.Info("📦 Initializing modules...")

	deps.Cfg = c.Config
	deps.Store = c.Store
	deps.FileSystem = c.FileSystem
	deps.Email = c.Email

	faqc, err := faqcontainer.New(ctx, deps)
	if err != nil {
		return err
	}
	c.FAQ = faqc
	return nil
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) StartBackgroundServices(ctx context.Context) error {
	logx.Info("🔄 Starting background services...")
	return c.FAQ.StartBackgroundServices(ctx)
}

// Shutdown waits for running jobs, then releases connections.
func (c *Container) Shutdown(ctx context.Context) {
	if c.FAQ != nil {
		logx.Info("⏳ Waiting for running jobs...")
		if err := c.FAQ.Shutdown(ctx); err != nil {
			logx.Errorf("Jobs did not finish before shutdown: %v", err)
		} else {
			logx.Info("  ✅ Job runner drained")
		}
	}
	c.Cleanup()
}

func (c *Container) Cleanup() {
	logx.Info("🧹 Cleaning up resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		} else {
			logx.Info("  ✅ Database connection closed")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		} else {
			logx.Info("  ✅ Redis connection closed")
		}
	}

	logx.Info("✅ Cleanup complete")
}
