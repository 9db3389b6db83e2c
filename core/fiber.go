package core

import (
	"context"
	"strings"
	"time"

	"dexd/pkg/heatmap"
	"dexd/pkg/marketdata"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"
)

// watchCtx scopes funding-history watchers to the process, not the request.
var watchCtx = context.Background()

func SetWatchContext(ctx context.Context) {
	watchCtx = ctx
}

func SetupFiberApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "dexd",
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, nil)
	})

	// markets
	app.Get("/markets", func(c *fiber.Ctx) error {
		if err := Markets.Err(); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, Markets.Markets())
	})
	app.Post("/markets/refresh", func(c *fiber.Ctx) error {
		refreshCtx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()
		if err := Markets.Refetch(refreshCtx); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, Markets.Markets())
	})
	app.Get("/markets/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		market, exists := Markets.MarketForPair(pair)
		if !exists {
			return fail(c, fiber.StatusServiceUnavailable, "market data not ready")
		}
		return ok(c, market)
	})

	// positions
	app.Get("/positions", func(c *fiber.Ctx) error {
		if err := Positions.Err(); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, Positions.Positions())
	})
	app.Get("/positions/:address", func(c *fiber.Ctx) error {
		addr := c.Params("address")
		if !common.IsHexAddress(addr) {
			return fail(c, fiber.StatusBadRequest, "invalid address")
		}
		positions, err := Positions.FetchFor(c.Context(), common.HexToAddress(addr))
		if err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, positions)
	})

	// orders & triggers
	app.Get("/orders", func(c *fiber.Ctx) error {
		if err := Orders.Err(); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, Orders.Orders())
	})
	app.Get("/orders/:address", func(c *fiber.Ctx) error {
		addr := c.Params("address")
		if !common.IsHexAddress(addr) {
			return fail(c, fiber.StatusBadRequest, "invalid address")
		}
		orders, err := Orders.FetchOrdersFor(c.Context(), common.HexToAddress(addr))
		if err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, orders)
	})
	app.Delete("/orders/:id", func(c *fiber.Ctx) error {
		if err := Orders.CancelOrder(c.Params("id")); err != nil {
			return fail(c, fiber.StatusBadGateway, err.Error())
		}
		return ok(c, nil)
	})
	app.Get("/triggers", func(c *fiber.Ctx) error {
		if err := Orders.Err(); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		return ok(c, Orders.AllActiveTriggers())
	})
	// the param is either a position id (numeric) or a full account address
	app.Get("/triggers/:key", func(c *fiber.Ctx) error {
		key := c.Params("key")
		if common.IsHexAddress(key) {
			triggers, err := Orders.FetchTriggersFor(c.Context(), common.HexToAddress(key))
			if err != nil {
				return fail(c, fiber.StatusServiceUnavailable, err.Error())
			}
			return ok(c, triggers)
		}
		return ok(c, Orders.ActiveTriggersFor(key))
	})
	app.Delete("/triggers/:positionId/:triggerId", func(c *fiber.Ctx) error {
		if err := Orders.CancelTrigger(c.Params("positionId"), c.Params("triggerId")); err != nil {
			return fail(c, fiber.StatusBadGateway, err.Error())
		}
		return ok(c, nil)
	})
	app.Delete("/triggers/:positionId", func(c *fiber.Ctx) error {
		if err := Orders.CancelAllTriggers(c.Params("positionId")); err != nil {
			return fail(c, fiber.StatusBadGateway, err.Error())
		}
		return ok(c, nil)
	})

	// funding
	app.Get("/funding-rates", func(c *fiber.Ctx) error {
		if err := Funding.Err(); err != nil {
			return fail(c, fiber.StatusServiceUnavailable, err.Error())
		}
		rows, columns := Funding.Rows()
		return ok(c, fiber.Map{"columns": columns, "rows": rows})
	})
	app.Get("/funding-history/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		return ok(c, History.Watch(watchCtx, pair))
	})
	app.Delete("/funding-history/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		History.Unwatch(pair)
		return ok(c, nil)
	})

	// stats & heatmap
	app.Get("/stats/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		pairStats, exists := Stats.Stats(pair)
		if !exists {
			return fail(c, fiber.StatusServiceUnavailable, "stats not ready")
		}
		return ok(c, pairStats)
	})
	app.Get("/heatmap", func(c *fiber.Ctx) error {
		return ok(c, heatmap.Aggregate(Stats.AllStats()))
	})

	// favorites
	app.Get("/favorites", func(c *fiber.Ctx) error {
		return ok(c, Favorites.List())
	})
	app.Post("/favorites/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		Favorites.Add(pair)
		return ok(c, Favorites.List())
	})
	app.Delete("/favorites/:pair", func(c *fiber.Ctx) error {
		pair, valid := pairParam(c)
		if !valid {
			return fail(c, fiber.StatusNotFound, "unknown pair")
		}
		Favorites.Remove(pair)
		return ok(c, Favorites.List())
	})

	return app
}

func ShutdownFiberApp(app *fiber.App) {
	_ = app.Shutdown()
}

// pairParam maps the URL form "btc-usd" to the universal pair "BTC/USD" and
// checks it against the asset universe.
func pairParam(c *fiber.Ctx) (string, bool) {
	pair := strings.ToUpper(strings.ReplaceAll(c.Params("pair"), "-", "/"))
	_, exists := marketdata.AssetIds[pair]
	return pair, exists
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
