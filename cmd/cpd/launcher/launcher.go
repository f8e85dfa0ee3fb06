// Package launcher assembles and runs the control plane daemon.
package launcher

import (
	"context"
	"fmt"
	"net"
	nethttp "net/http"
	"os"
	"os/user"
	"path/filepath"
	"sync"

	controlplane "github.com/ITlusions/ITL.ControlPlane.SDK-sub001"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/bolt"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/http"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/inmem"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/cli"
	kithttp "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kit/transport/http"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/kv/migration/all"
	cplogger "github.com/ITlusions/ITL.ControlPlane.SDK-sub001/logger"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/registry"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/snowflake"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/sqlite"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/sqlite/migrations"
	"github.com/ITlusions/ITL.ControlPlane.SDK-sub001/tenant"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// BoltStore stores all REST resources in boltdb.
	BoltStore = "bolt"
	// MemoryStore stores all REST resources in memory (useful for testing).
	MemoryStore = "memory"
)

// Launcher represents the main program execution.
type Launcher struct {
	wg      sync.WaitGroup
	cancel  func()
	running bool

	logLevel          zapcore.Level
	httpBindAddress   string
	storeType         string
	boltPath          string
	sqlitePath        string
	providerNamespace string

	boltStore *bolt.KVStore
	sqlStore  *sqlite.SqlStore

	httpPort   int
	httpServer *nethttp.Server

	logger *zap.Logger
	reg    *prometheus.Registry

	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// NewLauncher returns a new instance of Launcher connected to standard in/out/err.
func NewLauncher() *Launcher {
	return &Launcher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Opts returns the command line options understood by the launcher.
func Opts(l *Launcher) []cli.Opt {
	dir, err := cpdDir()
	if err != nil {
		panic(fmt.Errorf("failed to determine cpd directory: %v", err))
	}

	return []cli.Opt{
		{
			DestP:   &l.logLevel,
			Flag:    "log-level",
			Default: zapcore.InfoLevel,
			Desc:    "supported log levels are debug, info, warn and error",
		},
		{
			DestP:   &l.httpBindAddress,
			Flag:    "http-bind-address",
			Default: ":8086",
			Desc:    "bind address for the REST HTTP API",
		},
		{
			DestP:   &l.storeType,
			Flag:    "store",
			Default: BoltStore,
			Desc:    "backing store for REST resources (bolt or memory)",
		},
		{
			DestP:   &l.boltPath,
			Flag:    "bolt-path",
			Default: filepath.Join(dir, "cpd.bolt"),
			Desc:    "path to boltdb database",
		},
		{
			DestP:   &l.sqlitePath,
			Flag:    "sqlite-path",
			Default: filepath.Join(dir, sqlite.DefaultFilename),
			Desc:    "path to the sqlite database for locations and policies",
		},
		{
			DestP:   &l.providerNamespace,
			Flag:    "provider-namespace",
			Default: controlplane.DefaultProviderNamespace,
			Desc:    "namespace the built-in resource providers register under",
		},
	}
}

// cpdDir is the default directory for daemon state, below the current user's
// home directory.
func cpdDir() (string, error) {
	var dir string
	u, err := user.Current()
	if err == nil {
		dir = u.HomeDir
	} else if home := os.Getenv("HOME"); home != "" {
		dir = home
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	return filepath.Join(dir, ".cpd"), nil
}

// Running returns true if the main Launcher has started running.
func (m *Launcher) Running() bool {
	return m.running
}

// Registry returns the prometheus metrics registry.
func (m *Launcher) Registry() *prometheus.Registry {
	return m.reg
}

// Logger returns the launchers logger.
func (m *Launcher) Logger() *zap.Logger {
	return m.logger
}

// URL returns the URL to connect to the HTTP server.
func (m *Launcher) URL() string {
	return fmt.Sprintf("http://127.0.0.1:%d", m.httpPort)
}

// Cancel executes the context cancel on the program. Used for testing.
func (m *Launcher) Cancel() { m.cancel() }

// Shutdown shuts down the HTTP server and waits for all services to clean up.
func (m *Launcher) Shutdown(ctx context.Context) error {
	var err error
	err = multierr.Append(err, m.httpServer.Shutdown(ctx))

	if m.boltStore != nil {
		m.logger.Info("Stopping", zap.String("service", "bolt"))
		err = multierr.Append(err, m.boltStore.Close())
	}

	m.logger.Info("Stopping", zap.String("service", "sqlite"))
	err = multierr.Append(err, m.sqlStore.Close())

	m.wg.Wait()
	m.logger.Sync()
	return err
}

// Run starts the daemon and returns once the HTTP server is listening.
func (m *Launcher) Run(ctx context.Context) (err error) {
	m.running = true
	ctx, m.cancel = context.WithCancel(ctx)

	// Create top level logger
	logconf := &cplogger.Config{
		Format: "auto",
		Level:  m.logLevel,
	}
	m.logger, err = logconf.New(m.Stdout)
	if err != nil {
		return err
	}
	m.logger.Info("Starting control plane daemon",
		zap.String("store", m.storeType),
		zap.String("namespace", m.providerNamespace),
	)

	m.reg = prometheus.NewRegistry()
	m.reg.MustRegister(prometheus.NewGoCollector())

	var kvStore kv.SchemaStore
	switch m.storeType {
	case BoltStore:
		store := bolt.NewKVStore(m.logger.With(zap.String("service", "bolt")), m.boltPath)
		if err := store.Open(ctx); err != nil {
			m.logger.Error("failed opening bolt", zap.Error(err))
			return err
		}
		m.boltStore = store
		m.reg.MustRegister(store)
		kvStore = store
	case MemoryStore:
		kvStore = inmem.NewKVStore()
		m.sqlitePath = sqlite.InMemory
	default:
		err := fmt.Errorf("unknown store type %s; expected bolt or memory", m.storeType)
		m.logger.Error("failed opening store", zap.Error(err))
		return err
	}

	migrator, err := migration.NewMigrator(
		m.logger.With(zap.String("service", "migrations")),
		kvStore,
		all.Migrations[:]...,
	)
	if err != nil {
		m.logger.Error("failed to initialize kv migrator", zap.Error(err))
		return err
	}
	if err := migrator.Up(ctx); err != nil {
		m.logger.Error("failed to apply kv migrations", zap.Error(err))
		return err
	}

	m.sqlStore, err = sqlite.NewSqlStore(m.sqlitePath, m.logger.With(zap.String("service", "sqlite")))
	if err != nil {
		m.logger.Error("failed opening sqlite", zap.Error(err))
		return err
	}
	sqlMigrator := sqlite.NewMigrator(m.sqlStore, m.logger.With(zap.String("service", "sqlite-migrations")))
	if err := sqlMigrator.Up(ctx, migrations.All); err != nil {
		m.logger.Error("failed to apply sqlite migrations", zap.Error(err))
		return err
	}

	idGen := snowflake.NewIDGenerator()

	tenantSvc := tenant.NewService(tenant.NewStore(kvStore))

	var tenantService controlplane.TenantService = tenantSvc
	tenantService = tenant.NewTenantLogger(m.logger.With(zap.String("service", "tenant")), tenantService)
	tenantService = tenant.NewTenantMetrics(m.reg, tenantService)

	var resourceGroupService controlplane.ResourceGroupService = tenantSvc
	resourceGroupService = tenant.NewResourceGroupLogger(m.logger.With(zap.String("service", "resource_group")), resourceGroupService)
	resourceGroupService = tenant.NewResourceGroupMetrics(m.reg, resourceGroupService)

	locationSvc := sqlite.NewLocationService(m.sqlStore, idGen)
	policySvc := sqlite.NewPolicyService(m.sqlStore, idGen)

	providerRegistry := registry.New()
	if err := tenant.RegisterProviders(providerRegistry, m.providerNamespace, tenantSvc); err != nil {
		m.logger.Error("failed registering resource providers", zap.Error(err))
		return err
	}

	backend := &http.APIBackend{
		Logger:                 m.logger,
		HTTPErrorHandler:       kithttp.ErrorHandler(0),
		Registry:               providerRegistry,
		TenantService:          tenantService,
		ManagementGroupService: tenantSvc,
		SubscriptionService:    tenantSvc,
		ResourceGroupService:   resourceGroupService,
		LocationService:        locationSvc,
		PolicyService:          policySvc,
	}

	httpLogger := m.logger.With(zap.String("service", "http"))
	apiHandler := http.NewAPIHandler(backend,
		http.WithResourceHandler(tenant.NewHTTPTenantHandler(httpLogger, tenantService)),
		http.WithResourceHandler(tenant.NewHTTPManagementGroupHandler(httpLogger, tenantSvc)),
		http.WithResourceHandler(tenant.NewHTTPSubscriptionHandler(httpLogger, tenantSvc)),
		http.WithResourceHandler(tenant.NewHTTPResourceGroupHandler(httpLogger, resourceGroupService)),
	)

	h := http.NewHandlerFromRegistry("cpd", m.reg,
		http.WithLog(httpLogger),
		http.WithAPIHandler(apiHandler),
	)

	m.httpServer = &nethttp.Server{
		Addr:    m.httpBindAddress,
		Handler: h,
	}

	ln, err := net.Listen("tcp", m.httpBindAddress)
	if err != nil {
		httpLogger.Error("failed http listener", zap.Error(err))
		return err
	}

	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		m.httpPort = addr.Port
	}

	m.wg.Add(1)
	go func(log *zap.Logger) {
		defer m.wg.Done()
		log.Info("Listening", zap.String("transport", "http"), zap.String("addr", m.httpBindAddress), zap.Int("port", m.httpPort))

		if err := m.httpServer.Serve(ln); err != nethttp.ErrServerClosed {
			log.Error("failed http service", zap.Error(err))
		}
		log.Info("Stopping")
	}(httpLogger)

	return nil
}
