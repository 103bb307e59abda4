package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fanfanvithon/ProPymeTransparente/internal/application/cashbook"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/inventory"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/ports"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/purchases"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/reporting"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/sales"
	"github.com/fanfanvithon/ProPymeTransparente/internal/application/usecase"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/repository"
	"github.com/fanfanvithon/ProPymeTransparente/internal/domain/tax"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/export"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/memory"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/metrics"
	"github.com/fanfanvithon/ProPymeTransparente/internal/infrastructure/postgres"
	httpRouter "github.com/fanfanvithon/ProPymeTransparente/internal/interfaces/http"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/config"
	"github.com/fanfanvithon/ProPymeTransparente/pkg/logger"
)

// storage agrupa lo que cada driver entrega a los casos de uso.
type storage struct {
	txRunner  ports.TxRunner
	products  repository.ProductRepository
	movements repository.CashMovementRepository
	sales     repository.SaleRepository
	purchases repository.PurchaseRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	codec, err := tax.NewCodec(cfg.Tax.VATRate)
	if err != nil {
		log.Fatal().Err(err).Msg("tasa de IVA")
	}

	ctx := context.Background()
	store := openStorage(ctx, cfg, log)
	defer store.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var recorder ports.OperationRecorder = ports.NopRecorder{}
	if cfg.Metrics.Enabled {
		rec, err := metrics.NewRecorder(registry)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		recorder = rec
	}

	ledger := inventory.NewStockLedger(store.txRunner, store.products, recorder, log.For("inventory"))
	cashUC := cashbook.NewUseCase(store.txRunner, store.movements, loc, recorder, log.For("cashbook"))
	salesUC := sales.NewUseCase(store.txRunner, ledger, codec, loc, recorder, log.For("sales"))
	purchasesUC := purchases.NewUseCase(store.txRunner, ledger, codec, loc, recorder, log.For("purchases"))
	productUC := usecase.NewProductUseCase(store.products, log.For("products"))
	reportsUC := reporting.NewUseCase(store.products, store.sales, store.purchases, cashUC, codec)
	exportUC := reporting.NewExport(reportsUC, export.NewRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en http://localhost:<port>/docs; el middleware falla si el archivo no existe.
	if _, err := os.Stat(cfg.Docs.SwaggerPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerPath,
			Path:     "docs",
			Title:    "ProPyme Transparente API",
		}))
	} else {
		log.Warn().Str("path", cfg.Docs.SwaggerPath).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Cash:      cashUC,
		Sales:     salesUC,
		Purchases: purchasesUC,
		Products:  productUC,
		Reports:   reportsUC,
		Export:    exportUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: /api sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage conecta el driver configurado; con postgres aplica migraciones si DB_AUTO_MIGRATE.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return storage{
			txRunner:  memory.NewTxRunner(s),
			products:  s.Products(),
			movements: s.CashMovements(),
			sales:     s.Sales(),
			purchases: s.Purchases(),
			close:     func() {},
		}
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	repos := postgres.NewRepositories(pool)
	return storage{
		txRunner:  postgres.NewTxRunner(pool),
		products:  repos.Products(),
		movements: repos.CashMovements(),
		sales:     repos.Sales(),
		purchases: repos.Purchases(),
		close:     pool.Close,
	}
}
