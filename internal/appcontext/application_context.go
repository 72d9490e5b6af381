package appcontext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/middleware"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/config"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/constants"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/domain/model"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/producer"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/catalog"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/db"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/memory"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/infra/repository/redis_repo"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/clock"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/pkg/token"
	"github.com/GnanaJothi-79/elite-device-boutique/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type ApplicationContext struct {
	Cf          *config.Config
	Clock       clock.Clock
	RedisClient *redis.Client
	DbDao       *db.DbDao

	ProductRepo repository.IProductRepository
	CartRepo    repository.ICartRepository
	OrderRepo   repository.IOrderRepository
	UserRepo    repository.IUserRepository

	EventProducer producer.IOrderEventProducer
	TokenMaker    token.Maker
	AuthLimiter   middleware.ILimiter

	CatalogService  service.ICatalogService
	CartService     service.ICartService
	OrderService    service.IOrderService
	CheckoutService service.ICheckoutService
	AuthService     service.IAuthService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:    cf,
		Clock: clock.New(),
	}
	log.Info().
		Str("env", cf.Env).
		Str("cart_store", cf.CartStore).
		Str("user_store", cf.UserStore).
		Strs("kafka_brokers", cf.KafkaBrokers).
		Msg("loading application context")

	if err := app.Init(); err != nil {
		// 已經建立的連線要收掉
		app.closeInfra()
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"product repository", app.setUpProductRepo},
		{"cart repository", app.setUpCartRepo},
		{"order repository", app.setUpOrderRepo},
		{"user repository", app.setUpUserRepo},
		{"event producer", app.setUpEventProducer},
		{"token maker", app.setUpTokenMaker},
		{"auth limiter", app.setUpAuthLimiter},
		{"services", app.setUpServices},
	}
	for _, step := range steps {
		log.Debug().Msgf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to setup %s: %w", step.name, err)
		}
		log.Debug().Msgf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) setUpProductRepo() error {
	repo, err := catalog.NewDefaultCatalogRepo()
	if err != nil {
		return err
	}
	app.ProductRepo = repo
	return nil
}

func (app *ApplicationContext) setUpCartRepo() error {
	switch constants.StoreType(app.Cf.CartStore) {
	case constants.StoreMemory, "":
		app.CartRepo = memory.NewCartRepo()
	case constants.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     app.Cf.RedisAddr,
			Password: app.Cf.RedisPas,
			DB:       app.Cf.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("redis ping %s: %w", app.Cf.RedisAddr, err)
		}
		app.RedisClient = client
		app.CartRepo = redis_repo.NewCartRepo(client, app.Cf.SessionTTL)
	default:
		return fmt.Errorf("unsupported CART_STORE %q", app.Cf.CartStore)
	}
	return nil
}

func (app *ApplicationContext) setUpOrderRepo() error {
	app.OrderRepo = memory.NewOrderRepo()
	return nil
}

func (app *ApplicationContext) setUpUserRepo() error {
	switch constants.StoreType(app.Cf.UserStore) {
	case constants.StoreMemory, "":
		app.UserRepo = memory.NewUserRepo()
	case constants.StorePostgres:
		conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
		if err != nil {
			return err
		}
		app.DbDao = db.NewDbDao(conn)
		if err := app.DbDao.InitMigrate(); err != nil {
			return err
		}
		app.UserRepo = db.NewUserRepo(app.DbDao)
	default:
		return fmt.Errorf("unsupported USER_STORE %q", app.Cf.UserStore)
	}
	return nil
}

// 沒有設定 broker 時事件只寫 debug log
func (app *ApplicationContext) setUpEventProducer() error {
	if len(app.Cf.KafkaBrokers) == 0 {
		app.EventProducer = &producer.NoopOrderEventProducer{}
		return nil
	}
	p, err := producer.NewOrderEventProducer(producer.DefaultConfig(app.Cf.KafkaBrokers, app.Cf.KafkaTopic))
	if err != nil {
		return err
	}
	app.EventProducer = p
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	maker, err := token.NewJWTMaker(app.Cf.JwtSecret)
	if err != nil {
		return err
	}
	app.TokenMaker = maker
	return nil
}

func (app *ApplicationContext) setUpAuthLimiter() error {
	if app.Cf.AuthRateLimit <= 0 {
		return nil
	}
	app.AuthLimiter = middleware.NewKeyedTokenBucket(app.Cf.AuthRateLimit, app.Cf.AuthRateBurst)
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	fee, threshold, taxRate, err := app.Cf.Pricing()
	if err != nil {
		return err
	}
	pricing := service.Pricing{
		ShippingFee:           fee,
		FreeShippingThreshold: threshold,
		TaxRate:               taxRate,
	}

	orderCfg := service.OrderServiceConfig{
		DeliveryEstimate: app.Cf.DeliveryEstimate,
		Schedule: []service.StatusStep{
			{Status: model.OrderStatusConfirmed, After: app.Cf.StatusConfirmedAfter},
			{Status: model.OrderStatusShipped, After: app.Cf.StatusShippedAfter},
			{Status: model.OrderStatusOutForDelivery, After: app.Cf.StatusOutForDeliveryAfter},
			{Status: model.OrderStatusDelivered, After: app.Cf.StatusDeliveredAfter},
		},
	}

	catalogService := service.NewCatalogService(app.ProductRepo)
	cartService := service.NewCartService(app.CartRepo, catalogService, pricing)
	orderService := service.NewOrderService(app.OrderRepo, app.EventProducer, app.Clock, orderCfg)

	app.CatalogService = catalogService
	app.CartService = cartService
	app.OrderService = orderService
	app.CheckoutService = service.NewCheckoutService(cartService, orderService, app.Clock, app.Cf.ProcessingDelay)
	app.AuthService = service.NewAuthService(app.UserRepo, app.TokenMaker, app.Cf.TokenTTL)
	return nil
}

// Shutdown 先停結帳與訂單排程，送完事件後再關外部連線
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error
		if app.CheckoutService != nil {
			errs = append(errs, app.CheckoutService.Close())
		}
		if app.OrderService != nil {
			errs = append(errs, app.OrderService.Close())
		}
		errs = append(errs, app.closeInfra())
		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("application shutdown with error")
		} else {
			log.Info().Msg("Application shutdown complete")
		}
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}

func (app *ApplicationContext) closeInfra() error {
	var errs []error
	if app.EventProducer != nil {
		log.Info().Msg("Closing event producer...")
		errs = append(errs, app.EventProducer.Close())
	}
	if app.RedisClient != nil {
		log.Info().Msg("Closing redis connection...")
		errs = append(errs, app.RedisClient.Close())
	}
	if app.DbDao != nil {
		log.Info().Msg("Closing database connection...")
		errs = append(errs, app.DbDao.Close())
	}
	return errors.Join(errs...)
}
