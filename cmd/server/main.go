package main

import (
	"context"
	"log"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/cache"
	"storefront-service/internal/config"
	"storefront-service/internal/controllers/http"
	mongoinfra "storefront-service/internal/infra/mongo"
	mysqlinfra "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/metrics"
	"storefront-service/internal/payment"
	"storefront-service/internal/repository"
	mongorepo "storefront-service/internal/repository/mongo"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type stores struct {
	orders     repository.OrderRepository
	miniStores repository.MiniStoreRepository
	products   repository.ProductRepository
	users      repository.UserRepository
	ping       http.HealthCheck
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.DriverMySQL {
		db, err := mysqlinfra.Open(cfg.MySQL, mysqlrepo.Models()...)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &stores{
			orders:     mysqlrepo.NewOrderRepository(db),
			miniStores: mysqlrepo.NewMiniStoreRepository(db),
			products:   mysqlrepo.NewProductRepository(db),
			users:      mysqlrepo.NewUserRepository(db),
			ping:       sqlDB.PingContext,
			close:      func() { _ = sqlDB.Close() },
		}, nil
	}

	client, db, err := mongoinfra.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	return &stores{
		orders:     mongorepo.NewOrderRepository(db),
		miniStores: mongorepo.NewMiniStoreRepository(db),
		products:   mongorepo.NewProductRepository(db),
		users:      mongorepo.NewUserRepository(db),
		ping:       func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:      func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}
	defer st.close()

	products, miniStores := st.products, st.miniStores
	if cfg.RedisHost != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisHost + ":6379",
			DB:           0,
			PoolSize:     50,
			MinIdleConns: 5,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer redisClient.Close()

		c := cache.New(redisClient)
		products = cache.Products(products, c)
		miniStores = cache.MiniStores(miniStores, c)
		log.Printf("Redis cache enabled at %s", cfg.RedisHost)
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, rabbitmq.DefaultExchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	providers := services.Providers{
		Signer: payment.NewSigner(cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret),
	}
	if cfg.StripeSecretKey != "" {
		stripeGateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		providers.Checkout = stripeGateway
		providers.Webhook = stripeGateway
	}
	if cfg.RazorpayKeyID != "" {
		providers.Orders = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	guard := auth.NewGuard(cfg.JWTSecret)
	m := metrics.NewServerMetrics(nil)

	orderSvc := services.NewOrderService(st.orders, products, st.users, providers, publisher, services.OrderSettings{
		Currency:    cfg.Currency,
		BaseURL:     cfg.BaseURL,
		DeliveryFee: cfg.DeliveryFee,
	})
	orderSvc.SetMetrics(m)

	limiter := http.NewRateLimiter(5, 20)
	stop := make(chan struct{})
	defer close(stop)
	limiter.StartCleanup(time.Minute, stop)

	handler := http.NewHandler(
		orderSvc,
		services.NewMiniStoreService(miniStores, products),
		services.NewUserService(st.users, guard, services.AdminCredentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword}),
		services.NewProductService(products),
		guard,
		limiter,
	)
	handler.SetMetrics(m)
	handler.SetHealthCheck(st.ping)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), http.CORS(cfg.CORSOrigins))

	handler.RegisterRoutes(r)

	log.Printf("Starting storefront service on port %s (store driver %s)", cfg.Port, cfg.StoreDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
