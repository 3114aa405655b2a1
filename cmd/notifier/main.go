package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/api/handlers/admin"
	"github.com/aliskhannn/market-notifier/internal/api/handlers/health"
	intakehandler "github.com/aliskhannn/market-notifier/internal/api/handlers/intake"
	"github.com/aliskhannn/market-notifier/internal/api/handlers/notification"
	"github.com/aliskhannn/market-notifier/internal/api/router"
	"github.com/aliskhannn/market-notifier/internal/api/server"
	"github.com/aliskhannn/market-notifier/internal/broadcast"
	"github.com/aliskhannn/market-notifier/internal/config"
	"github.com/aliskhannn/market-notifier/internal/gateway"
	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/monitor"
	deliverymsg "github.com/aliskhannn/market-notifier/internal/rabbitmq/handlers/delivery"
	"github.com/aliskhannn/market-notifier/internal/rabbitmq/queue"
	deliveryrepo "github.com/aliskhannn/market-notifier/internal/repository/delivery"
	notifrepo "github.com/aliskhannn/market-notifier/internal/repository/notification"
	settingsrepo "github.com/aliskhannn/market-notifier/internal/repository/settings"
	subscriberrepo "github.com/aliskhannn/market-notifier/internal/repository/subscriber"
	deliverysvc "github.com/aliskhannn/market-notifier/internal/service/delivery"
	"github.com/aliskhannn/market-notifier/internal/service/dispatch"
	"github.com/aliskhannn/market-notifier/internal/service/intake"
	notifsvc "github.com/aliskhannn/market-notifier/internal/service/notification"
	"github.com/aliskhannn/market-notifier/internal/worker"
	"github.com/aliskhannn/market-notifier/pkg/chat"
	"github.com/aliskhannn/market-notifier/pkg/email"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	// RabbitMQ: one AMQP channel per delivery queue.
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	var (
		amqpChannels []*rabbitmq.Channel
		queues       = make(map[model.ChannelKey]*queue.DeliveryQueue, len(model.Channels))
	)

	for _, channel := range model.Channels {
		ch, err := conn.Channel()
		if err != nil {
			zlog.Logger.Fatal().Err(err).Str("channel", string(channel)).Msg("failed to open channel")
		}
		amqpChannels = append(amqpChannels, ch)

		q, err := queue.NewDeliveryQueue(ch, channel, cfg.RabbitMQ.Topology)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Str("channel", string(channel)).Msg("failed to create delivery queue")
		}
		queues[channel] = q
	}

	// Postgres.
	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Redis: the publisher connection also serves the unread count cache.
	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	subscriberConn := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)

	broadcaster := broadcast.New(broadcast.NewRedisBroker(rdb.Client, subscriberConn.Client), cfg.Redis.Broadcast)
	if err := broadcaster.Start(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to start broadcaster")
	}

	// Repositories and services.
	notificationRepo := notifrepo.NewRepository(db)
	deliveryRepo := deliveryrepo.NewRepository(db)
	settingsRepo := settingsrepo.NewRepository(db)
	subscriberRepo := subscriberrepo.NewRepository(db)

	tracker := deliverysvc.NewTracker(deliveryRepo)

	enqueuers := make(map[model.ChannelKey]dispatch.Enqueuer, len(queues))
	for channel, q := range queues {
		enqueuers[channel] = q
	}
	dispatcher := dispatch.NewDispatcher(deliveryRepo, enqueuers, val, cfg.Retry)

	notificationService := notifsvc.NewService(notificationRepo, settingsRepo, dispatcher, broadcaster, rdb.Client)
	intakeService := intake.NewService(subscriberRepo, notificationService, val)

	// Channel gateways.
	var sender interface {
		Send(ctx context.Context, msg email.Message) error
	}

	switch cfg.Email.Provider {
	case config.ProviderSES:
		sender, err = email.NewSESClientFromEnv(ctx, cfg.Email.SES.Region, cfg.Email.SES.From, cfg.Email.SES.ConfigurationSet)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to create ses client")
		}
	default:
		smtp := cfg.Email.SMTP
		sender = email.NewClient(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From)
	}

	chatClient := chat.NewClient(cfg.Chat.HTTPTimeout)

	gateways := map[model.ChannelKey]deliverymsg.Gateway{
		model.ChannelEmail: gateway.NewEmail(sender, cfg.Channel(model.ChannelEmail).SendTimeout),
		model.ChannelChatA: gateway.NewChatA(chatClient, cfg.Channel(model.ChannelChatA).SendTimeout),
		model.ChannelChatB: gateway.NewChatB(chatClient, cfg.Channel(model.ChannelChatB).SendTimeout),
	}

	// Worker pools.
	var (
		pools []*worker.Pool
		wg    sync.WaitGroup
	)

	for _, channel := range model.Channels {
		settings := cfg.Channel(channel)
		pool := worker.NewPool(queues[channel], deliverymsg.NewHandler(tracker, gateways[channel]), settings.Rate, settings.Workers)
		pools = append(pools, pool)

		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(ctx, cfg.Retry)
		}()
	}

	config.Watch(func(next *config.Config) {
		for _, pool := range pools {
			pool.SetRate(next.Channel(pool.Channel()).Rate)
		}
	})

	// Delivery monitor.
	mon, err := monitor.New(tracker, cfg.Monitor.Spec)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create delivery monitor")
	}
	if err := mon.Start(ctx); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to start delivery monitor")
	}

	// HTTP.
	adminQueues := make([]admin.Queue, 0, len(model.Channels))
	for _, channel := range model.Channels {
		adminQueues = append(adminQueues, queues[channel])
	}

	r := router.New(router.Handlers{
		Notification: notification.NewHandler(notificationService, broadcaster, val, cfg.Server.StreamHeartbeat),
		Admin:        admin.NewHandler(adminQueues, tracker, val, cfg.Retry),
		Intake:       intakehandler.NewHandler(intakeService, val),
		Health:       health.NewHandler(broadcaster),
	})
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to notify systemd")
	}
	zlog.Logger.Info().Str("addr", cfg.Server.HTTPPort).Msg("market notifier started")

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	// Workers stop taking jobs once ctx is done; wait for in-flight sends.
	wg.Wait()
	mon.Stop()

	if err := broadcaster.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close broadcaster")
	}

	for _, ch := range amqpChannels {
		if err := ch.Close(); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
		}
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close master DB")
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Error().Err(err).Int("slave", i).Msg("failed to close slave DB")
		}
	}
}
