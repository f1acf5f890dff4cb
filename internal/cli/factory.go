// Package cli wires the engine, stores, and presentation for the
// commands under cmd/shrdlite.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/shrdlite"
	fileAdapter "github.com/aretw0/shrdlite/internal/adapters/file"
	redisAdapter "github.com/aretw0/shrdlite/internal/adapters/redis"
	"github.com/aretw0/shrdlite/internal/logging"
	"github.com/aretw0/shrdlite/internal/worlds"
	"github.com/aretw0/shrdlite/pkg/adapters/memory"
	"github.com/aretw0/shrdlite/pkg/adapters/process"
	"github.com/aretw0/shrdlite/pkg/domain"
	"github.com/aretw0/shrdlite/pkg/observability"
	"github.com/aretw0/shrdlite/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"
)

// Options are the settings shared by all CLI commands. Unset fields other
// than Timeout fall back to SHRDLITE_* environment variables.
type Options struct {
	Store         string // "memory", "file", or "redis"
	DataDir       string // base directory for the file store
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Grammar       string // path to an external grammar config
	LogLevel      string
	Timeout       time.Duration
}

// Runtime bundles everything a command needs.
type Runtime struct {
	Engine   *shrdlite.Engine
	Sessions *session.Manager
	Registry *prometheus.Registry
	Logger   *slog.Logger

	closers []func() error
}

// Close releases backend connections.
func (r *Runtime) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func envDefault(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

// Build resolves the options into a ready-to-use runtime.
func Build(opts Options) (*Runtime, error) {
	opts.Store = envDefault(opts.Store, "SHRDLITE_STORE")
	opts.DataDir = envDefault(opts.DataDir, "SHRDLITE_DATA_DIR")
	opts.RedisAddr = envDefault(opts.RedisAddr, "SHRDLITE_REDIS_ADDR")
	opts.RedisPassword = envDefault(opts.RedisPassword, "SHRDLITE_REDIS_PASSWORD")
	opts.Grammar = envDefault(opts.Grammar, "SHRDLITE_GRAMMAR")
	opts.LogLevel = envDefault(opts.LogLevel, "SHRDLITE_LOG_LEVEL")
	if opts.RedisDB == 0 {
		if db, err := strconv.Atoi(os.Getenv("SHRDLITE_REDIS_DB")); err == nil {
			opts.RedisDB = db
		}
	}

	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	engineOpts := []shrdlite.Option{
		shrdlite.WithLogger(logger),
		shrdlite.WithMetrics(metrics),
	}
	if opts.Timeout > 0 {
		engineOpts = append(engineOpts, shrdlite.WithTimeout(opts.Timeout))
	}
	if opts.Grammar != "" {
		cfg, err := process.LoadGrammar(opts.Grammar)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, shrdlite.WithParser(process.ParserFromConfig(cfg)))
	}

	rt := &Runtime{
		Engine:   shrdlite.New(engineOpts...),
		Registry: registry,
		Logger:   logger,
	}

	switch strings.ToLower(opts.Store) {
	case "", "memory":
		rt.Sessions = session.NewManager(memory.NewStore(), session.WithLogger(logger))
	case "file":
		rt.Sessions = session.NewManager(fileAdapter.New(opts.DataDir), session.WithLogger(logger))
	case "redis":
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis store selected but no address given (--redis-addr or SHRDLITE_REDIS_ADDR)")
		}
		client := backend.NewClient(&backend.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		store := redisAdapter.NewFromClient(client)
		locker := redisAdapter.NewLocker(client, "shrdlite:")
		rt.Sessions = session.NewManager(store,
			session.WithLogger(logger),
			session.WithLocker(locker),
		)
		rt.closers = append(rt.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, file, or redis)", opts.Store)
	}

	return rt, nil
}

// LoadWorld resolves a --world argument: a path to a YAML document when
// it names a file, otherwise a builtin world name.
func LoadWorld(arg string) (*domain.WorldState, string, error) {
	if arg == "" {
		arg = "small"
	}
	if strings.ContainsAny(arg, "/.") {
		def, err := worlds.Load(arg)
		if err != nil {
			return nil, "", err
		}
		return def.World(), def.Name, nil
	}
	def, err := worlds.Builtin(arg)
	if err != nil {
		return nil, "", err
	}
	return def.World(), def.Name, nil
}
