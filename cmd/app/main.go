package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/Rishi-jha/group-chat-app/configs"
	"github.com/Rishi-jha/group-chat-app/internal/group"
	"github.com/Rishi-jha/group-chat-app/internal/kafka"
	"github.com/Rishi-jha/group-chat-app/internal/message"
	"github.com/Rishi-jha/group-chat-app/internal/migrate"
	"github.com/Rishi-jha/group-chat-app/internal/reaction"
	"github.com/Rishi-jha/group-chat-app/internal/redisx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/db"
	"github.com/Rishi-jha/group-chat-app/internal/shared/httpx"
	"github.com/Rishi-jha/group-chat-app/internal/shared/jwt"
	"github.com/Rishi-jha/group-chat-app/internal/user"
)

func initOTEL(ctx context.Context) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		endpoint = "otel-collector:4318"
	}
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		log.Fatalf("otel exporter: %v", err)
	}
	res, _ := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("group-chat-app"),
		attribute.String("deployment.environment", os.Getenv("ENV")),
	))
	ratio := 1.0
	if s := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); s != "" {
		if f, e := strconv.ParseFloat(s, 64); e == nil && f >= 0 && f <= 1 {
			ratio = f
		}
	}
	tp := trace.NewTracerProvider(
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithBatcher(exp),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))
	return tp.Shutdown
}

func main() {
	_ = godotenv.Load()
	cfg := configs.LoadConfig()
	jwt.Configure(cfg.AccessTTL, cfg.RefreshTTL)

	ctx := context.Background()
	shutdown := initOTEL(ctx)
	defer func() {
		c, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = shutdown(c)
	}()

	store := db.Open(cfg.DSN())
	rds := redisx.NewClient(cfg.RedisAddr())

	kWriter, err := kafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Fatalf("kafka writer: %v", err)
	}
	defer kWriter.Close()

	if cfg.AutoMigrate {
		if err := migrate.AutoMigrateAll(store); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	// Wire repos & services
	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo, cfg.DefaultUserPass)
	if err := userSvc.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	groupRepo := group.NewRepository(store)
	groupSvc := group.NewService(groupRepo, userSvc)

	msgRepo := message.NewRepository(store)
	msgSvc := message.NewService(msgRepo, groupSvc, kWriter, rds)

	rxRepo := reaction.NewRepository(store)
	rxSvc := reaction.NewService(rxRepo, msgSvc)

	uh := user.NewHandler(userSvc)
	gh := group.NewHandler(groupSvc)
	mh := message.NewHandler(msgSvc)
	rh := reaction.NewHandler(rxSvc)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	// Public: token issuance
	mux.Handle("POST /api/v1/login", httpx.Wrap(uh.Login))
	mux.Handle("POST /api/v1/token", httpx.Wrap(uh.Refresh))

	protect := func(pattern string, h http.Handler) {
		mux.Handle(pattern, httpx.AuthMiddleware(h))
	}

	// Users
	protect("GET /api/v1/users", httpx.Wrap(uh.List))
	protect("POST /api/v1/users", httpx.Wrap(uh.Create))
	protect("GET /api/v1/users/{username}", httpx.Wrap(uh.Get))
	protect("PATCH /api/v1/users/{username}", httpx.Wrap(uh.Update))

	// Chat groups
	protect("GET /api/v1/chatgroups", httpx.Wrap(gh.List))
	protect("POST /api/v1/chatgroups", httpx.Wrap(gh.Create))
	protect("GET /api/v1/chatgroups/{group_id}", httpx.Wrap(gh.Get))
	protect("PATCH /api/v1/chatgroups/{group_id}", httpx.Wrap(gh.Rename))
	protect("DELETE /api/v1/chatgroups/{group_id}", httpx.Wrap(gh.Delete))
	protect("POST /api/v1/chatgroups/{group_id}/members", httpx.Wrap(gh.AddMembers))
	protect("DELETE /api/v1/chatgroups/{group_id}/members", httpx.Wrap(gh.RemoveMembers))
	protect("GET /api/v1/chatgroups/{group_id}/messages", httpx.Wrap(mh.ListByGroup))

	// Read-only, from Redis
	mux.Handle("GET /api/v1/chatgroups/popular", httpx.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		top := httpx.QueryInt(r, "top", 10)
		ids, err := rds.TopPopular(r.Context(), int64(top))
		if err != nil {
			return err
		}
		httpx.WriteJSON(w, map[string]any{"group_ids": ids}, http.StatusOK)
		return nil
	}))

	// Messages
	protect("POST /api/v1/messages", httpx.Wrap(mh.Send))
	protect("PATCH /api/v1/messages/{message_id}", httpx.Wrap(mh.Edit))

	// Reactions
	protect("GET /api/v1/messages/{message_id}/status", httpx.Wrap(rh.List))
	protect("POST /api/v1/messages/{message_id}/status", httpx.Wrap(rh.Set))
	protect("PATCH /api/v1/messages/{message_id}/status", httpx.Wrap(rh.Update))
	protect("DELETE /api/v1/messages/{message_id}/status", httpx.Wrap(rh.Remove))

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           otelhttp.NewHandler(mux, "http.server"),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("group-chat-app listening on %s", cfg.AppPort)
	log.Fatal(srv.ListenAndServe())
}
