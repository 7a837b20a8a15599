// tripfinder - cheap trip discovery over the Ryanair fare-search API
//
// Usage:
//   tripfinder search return --home-airports KRK,KTW --price-max 400 [options]
//   tripfinder search oneway --home-airports KRK --price-max 120 [options]
//   tripfinder serve --port 8080
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v2"

	"github.com/dharmasatrya/tripfinder/internal/cache"
	"github.com/dharmasatrya/tripfinder/internal/fares"
	"github.com/dharmasatrya/tripfinder/internal/handler"
	"github.com/dharmasatrya/tripfinder/internal/models"
	"github.com/dharmasatrya/tripfinder/internal/notify"
	"github.com/dharmasatrya/tripfinder/internal/ratelimit"
	"github.com/dharmasatrya/tripfinder/internal/search"
)

func main() {
	app := &cli.App{
		Name:  "tripfinder",
		Usage: "Find round-trip and one-way itineraries within a budget",
		Commands: []*cli.Command{
			searchCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commonSearchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "date-min",
			Value: time.Now().Format("2006-01-02"),
			Usage: "start of the calendar window to search",
		},
		&cli.StringFlag{
			Name:  "date-max",
			Value: time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
			Usage: "end of the calendar window to search",
		},
		&cli.StringSliceFlag{
			Name:     "home-airports",
			Usage:    "iata codes of airports to fly from and return to",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "dest-airports",
			Usage: "iata codes of destination airports",
		},
		&cli.StringFlag{
			Name:  "dest-country",
			Usage: "code of the destination country",
		},
		&cli.Float64Flag{
			Name:     "price-max",
			Usage:    "maximum cost of the whole trip in the chosen currency",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "currency",
			Value:   "EUR",
			Usage:   "code of currency to use",
			EnvVars: []string{"TRIPFINDER_CURRENCY"},
		},
		&cli.IntFlag{
			Name:  "passengers",
			Value: 1,
			Usage: "number of passengers",
		},
		&cli.StringFlag{
			Name:    "api-url",
			Value:   fares.DefaultBaseURL,
			Usage:   "base URL of the fare-search API",
			EnvVars: []string{"TRIPFINDER_API_URL"},
		},
		&cli.StringFlag{
			Name:    "discord-webhook",
			Usage:   "Discord webhook URL to post the cheapest trip to",
			EnvVars: []string{"TRIPFINDER_DISCORD_WEBHOOK"},
		},
	}
}

func searchCommand() *cli.Command {
	returnFlags := append(commonSearchFlags(),
		&cli.Float64Flag{
			Name:  "price-lowest",
			Value: 0,
			Usage: "lowest one-way fare you expect to find; narrows the first query",
		},
		&cli.IntFlag{
			Name:  "days-min",
			Value: 1,
			Usage: "minimum number of days for the whole trip",
		},
		&cli.IntFlag{
			Name:  "days-max",
			Value: 7,
			Usage: "maximum number of days for the whole trip",
		},
		&cli.IntFlag{
			Name:  "hours-min",
			Value: 0,
			Usage: "minimum hours between arrival and return departure when days-min is 0",
		},
	)

	return &cli.Command{
		Name:  "search",
		Usage: "Search for trips",
		Subcommands: []*cli.Command{
			{
				Name:  "oneway",
				Usage: "Search one-way trips",
				Flags: commonSearchFlags(),
				Action: func(c *cli.Context) error {
					return runSearch(c, true)
				},
			},
			{
				Name:  "return",
				Usage: "Search round trips",
				Flags: returnFlags,
				Action: func(c *cli.Context) error {
					return runSearch(c, false)
				},
			},
		},
	}
}

func runSearch(c *cli.Context, oneWay bool) error {
	req := models.SearchRequest{
		HomeAirports: c.StringSlice("home-airports"),
		DestAirports: c.StringSlice("dest-airports"),
		DestCountry:  c.String("dest-country"),
		DateMin:      c.String("date-min"),
		DateMax:      c.String("date-max"),
		DaysMin:      c.Int("days-min"),
		DaysMax:      c.Int("days-max"),
		HoursMin:     c.Int("hours-min"),
		PriceMax:     c.Float64("price-max"),
		PriceLowest:  c.Float64("price-lowest"),
		Passengers:   c.Int("passengers"),
		Currency:     c.String("currency"),
		OneWay:       oneWay,
	}
	if oneWay {
		// One-way searches have no duration bounds.
		req.DaysMin, req.DaysMax = 0, 0
	}

	if err := req.Validate(); err != nil {
		return err
	}
	params, err := req.Params()
	if err != nil {
		return err
	}

	client := fares.NewClient(params.Currency,
		fares.WithBaseURL(c.String("api-url")),
		fares.WithLimiter(ratelimit.NewEndpointLimiterWithDefaults()),
	)

	metrics := &fares.Metrics{}
	ctx := fares.WithMetrics(c.Context, metrics)
	searcher := search.NewSearcher(client)

	var trips []models.Trip
	if oneWay {
		trips = searcher.SearchOneWay(ctx, params)
	} else {
		trips = searcher.SearchReturn(ctx, params)
	}

	summaries := models.Summaries(trips)
	out, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	log.Printf("Made %d requests to the API in total", metrics.Requests)

	if webhook := c.String("discord-webhook"); webhook != "" && len(summaries) > 0 {
		message := notify.TripMessage(summaries[0], params.Currency, params.Passengers)
		if err := notify.NewDiscord(webhook).Send(ctx, message); err != nil {
			log.Printf("Discord notification failed: %v", err)
		}
	}

	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the trip search HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Value:   "8080",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "api-url",
				Value:   fares.DefaultBaseURL,
				EnvVars: []string{"TRIPFINDER_API_URL"},
			},
			&cli.BoolFlag{
				Name:    "cache-enabled",
				Value:   false,
				EnvVars: []string{"CACHE_ENABLED"},
			},
			&cli.StringFlag{
				Name:    "redis-host",
				Value:   "localhost",
				EnvVars: []string{"REDIS_HOST"},
			},
			&cli.StringFlag{
				Name:    "redis-port",
				Value:   "6379",
				EnvVars: []string{"REDIS_PORT"},
			},
			&cli.DurationFlag{
				Name:    "redis-ttl",
				Value:   10 * time.Minute,
				EnvVars: []string{"REDIS_TTL"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	limiter := ratelimit.NewEndpointLimiterWithDefaults()
	limiter.SetEndpointLimit(fares.EndpointFares, 3, 5)
	limiter.SetEndpointLimit(fares.EndpointGrid, 10, 15)

	baseClient := fares.NewClient("EUR",
		fares.WithBaseURL(c.String("api-url")),
		fares.WithLimiter(limiter),
	)

	var gridCache cache.GridCache
	if c.Bool("cache-enabled") {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: c.String("redis-host"),
			Port: c.String("redis-port"),
			TTL:  c.Duration("redis-ttl"),
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		gridCache = redisCache
		log.Printf("Redis grid cache enabled (host: %s:%s, TTL: %v)",
			c.String("redis-host"), c.String("redis-port"), c.Duration("redis-ttl"))
	} else {
		gridCache = cache.NewNoOpCache()
		log.Println("Grid cache disabled")
	}

	newSource := func(currency string) fares.Source {
		return cache.NewCachedSource(baseClient.WithCurrency(currency), gridCache, currency)
	}
	searchHandler := handler.NewSearchHandler(newSource)

	api := e.Group("/api/v1")
	api.POST("/trips/search", searchHandler.Search)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting trip finder server on port %s", c.String("port"))

	if err := e.Start(":" + c.String("port")); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	return nil
}
