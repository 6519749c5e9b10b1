package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"tourbook/gateway"
	"tourbook/service"
	"tourbook/tracing"
)

type config struct {
	Addr           string `env:"ADDR" envDefault:":8080"`
	PostgresURL    string `env:"POSTGRES_URL,required"`
	RedisAddr      string `env:"REDIS_ADDR,required"`
	PaymentsAddr   string `env:"PAYMENTS_ADDR,required"`
	MailerAddr     string `env:"MAILER_ADDR,required"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`
	Environment    string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	if cfg.JaegerEndpoint != "" {
		tp := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
		defer func() {
			_ = tp.Shutdown(context.Background())
		}()
	}

	sqlDB, err := otelsql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	dbConn := sqlx.NewDb(sqlDB, "postgres")
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	httpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	paymentClient := gateway.NewPaymentClient(cfg.PaymentsAddr, httpClient)
	mailerClient := gateway.NewMailerClient(cfg.MailerAddr, httpClient)

	svc := service.New(
		cfg.Addr,
		dbConn,
		redisClient,
		paymentClient,
		mailerClient,
		cfg.Environment != "production",
	)

	if err := svc.Run(ctx); err != nil {
		panic(err)
	}
}
