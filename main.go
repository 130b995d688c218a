package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path"

	"github.com/matst80/slask-view/pkg/common"
	"github.com/matst80/slask-view/pkg/config"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/messaging"
	"github.com/matst80/slask-view/pkg/server"
	"github.com/matst80/slask-view/pkg/storage"
	"github.com/matst80/slask-view/pkg/tracking"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/matst80/slask-view/pkg/view"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("slask-view", pflag.ExitOnError)
	config.RegisterFlags(flags)
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load("", flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
	})
	if cfg.File != "" {
		log.Info("using config file", "file", cfg.File)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hooks []common.ShutdownHook
	hooks = append(hooks, func(context.Context) error {
		cancel()
		return nil
	})

	disk := storage.NewDiskStorage("", path.Dir(cfg.DataFile))
	var source types.RecordSource
	source, err = disk.Source(path.Base(cfg.DataFile))
	if err != nil {
		log.Error("unusable data file", "file", cfg.DataFile, "err", err)
		os.Exit(1)
	}
	if cfg.Redis.Addr != "" {
		client := storage.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		source = storage.NewCached(source, client, "slask-view:"+cfg.Country+":records", cfg.Redis.TTL, log.With("component", "cache"))
		hooks = append(hooks, func(context.Context) error { return client.Close() })
		log.Info("record cache enabled", "addr", cfg.Redis.Addr)
	}

	srv := &server.WebServer{
		Catalog:       server.NewCatalog(source, view.DefaultCategoryField, log.With("component", "catalog")),
		Log:           log,
		PageSize:      cfg.PageSize,
		Columns:       view.ProductColumns,
		CategoryField: view.DefaultCategoryField,
		Country:       cfg.Country,
	}

	if cfg.Rabbit.Url != "" {
		trk, err := tracking.NewRabbitTracking(cfg.Rabbit.Url, cfg.Country, log.With("component", "tracking"))
		if err != nil {
			log.Error("tracking disabled", "err", err)
		} else {
			srv.Tracking = trk
			hooks = append(hooks, func(context.Context) error { return trk.Close() })
		}
		if conn, err := listenForChanges(ctx, cfg.Rabbit.Url, srv, log); err != nil {
			log.Error("catalog change listener disabled", "err", err)
		} else {
			hooks = append(hooks, func(context.Context) error { return conn.Close() })
		}
	}

	go func() {
		_ = srv.Catalog.Load(ctx)
	}()

	go func() {
		debug := &http.Server{Addr: cfg.DebugListen, Handler: srv.DebugHandler(cfg.Profiling)}
		log.Info("starting debug server", "addr", cfg.DebugListen)
		if err := debug.ListenAndServe(); err != nil {
			log.Error("debug server stopped", "err", err)
		}
	}()

	api := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.Listen,
		Handler: srv.Handler(),
	}, cfg.Timeouts)
	common.RunServerWithShutdown(log, api, "api", cfg.Timeouts.Shutdown, cfg.Timeouts.Hook, hooks...)
}

func listenForChanges(ctx context.Context, url string, srv *server.WebServer, log logger.Logger) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := messaging.DefineTopic(ch, messaging.GlobalPrefix, messaging.CatalogChanged); err != nil {
		conn.Close()
		return nil, err
	}
	err = messaging.ListenToTopic(ch, log.With("component", "listener"), messaging.GlobalPrefix, messaging.CatalogChanged, srv.ReloadOnChange(ctx))
	if err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
