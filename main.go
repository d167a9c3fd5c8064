package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"

	"github.com/mgavril/shopscope/internal/catalog"
	"github.com/mgavril/shopscope/internal/config"
	"github.com/mgavril/shopscope/internal/controller"
	"github.com/mgavril/shopscope/internal/history"
	"github.com/mgavril/shopscope/internal/search"
	"github.com/mgavril/shopscope/internal/ui"
	"github.com/mgavril/shopscope/internal/voice"
)

const version = "v0.3.0"

func main() {
	app := &cli.Command{
		Name:  "shopscope",
		Usage: "A terminal storefront browser with instant product search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: defaultConfigPathOrExit(),
			},
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Product catalog JSON (overrides config; empty uses the demo catalog)",
			},
		},
		Commands: []*cli.Command{
			browseCommand(),
			searchCommand(),
			historyCommand(),
			initCommand(),
			versionCommand(),
		},
		// Bare "shopscope" opens the browser.
		Action: func(ctx context.Context, c *cli.Command) error {
			return runBrowse(c, "")
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Open the interactive storefront browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "link",
				Usage: "Share link to seed the initial search (e.g. \"q=serum&category=Skin+care\")",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runBrowse(c, c.String("link"))
		},
	}
}

func runBrowse(c *cli.Command, link string) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	catalogPath, cat, err := loadCatalog(c, cfg)
	if err != nil {
		return err
	}

	hist, closeHist, err := openHistory(cfg)
	if err != nil {
		log.Printf("durable history unavailable, keeping it in memory: %v", err)
		hist = history.NewStore(history.NewMemoryKV(), cfg.HistoryLimit)
		closeHist = func() {}
	}
	defer closeHist()

	ctrl := controller.New(controller.Options{
		Products:        cat.Products,
		Vocabulary:      cfg.SuggestionVocabulary(),
		History:         hist,
		Engine:          search.NewEngine(language.Make(cfg.Locale)),
		Debounce:        cfg.Debounce.Duration,
		ResultLimit:     cfg.ResultLimit,
		SuggestionLimit: cfg.SuggestionLimit,
		Link:            link,
	})

	app := ui.NewApp(ui.Options{
		Catalog:     cat,
		CatalogPath: catalogPath,
		Controller:  ctrl,
		Version:     version,
	})

	rec := voice.NewCommandRecognizer(cfg.Voice.Command, app.VoiceSink())
	if rec == nil {
		// No speech backend configured or on PATH.
		app.SetVoice(voice.NewAdapter(nil, cfg.Voice.Language, nil))
	} else {
		app.SetVoice(voice.NewAdapter(rec, cfg.Voice.Language, ctrl.Submit))
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run a one-shot product search and print the results",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Usage: "Category filter (exact match)"},
			&cli.StringFlag{Name: "subcategory", Usage: "Subcategory filter"},
			&cli.FloatFlag{Name: "min", Usage: "Minimum price"},
			&cli.FloatFlag{Name: "max", Usage: "Maximum price"},
			&cli.BoolFlag{Name: "in-stock", Usage: "Only products in stock"},
			&cli.FloatFlag{Name: "min-rating", Usage: "Minimum rating (0-5)"},
			&cli.StringFlag{Name: "sort", Usage: "Sort as key[:dir], keys: name, price, rating, newest", Value: "name"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of results", Value: 20},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSearch(c)
		},
	}
}

func runSearch(c *cli.Command) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	_, cat, err := loadCatalog(c, cfg)
	if err != nil {
		return err
	}

	filter := catalog.Filter{
		Category:    c.String("category"),
		Subcategory: c.String("subcategory"),
	}
	if c.IsSet("min") {
		v := c.Float("min")
		filter.PriceMin = &v
	}
	if c.IsSet("max") {
		v := c.Float("max")
		filter.PriceMax = &v
	}
	if c.Bool("in-stock") {
		v := true
		filter.InStock = &v
	}
	if c.IsSet("min-rating") {
		v := c.Float("min-rating")
		filter.RatingMin = &v
	}
	if filter.PriceMin != nil && filter.PriceMax != nil && *filter.PriceMin > *filter.PriceMax {
		fmt.Fprintln(os.Stderr, "warning: --min exceeds --max, no product can match")
	}

	sortOpt, err := parseSort(c.String("sort"))
	if err != nil {
		return err
	}

	engine := search.NewEngine(language.Make(cfg.Locale))
	query := strings.Join(c.Args().Slice(), " ")
	results := engine.Evaluate(cat.Products, query, filter, sortOpt, c.Int("limit"))

	if len(results) == 0 {
		fmt.Println("No products found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tPRICE\tRATING\tSTOCK")
	for _, p := range results {
		stock := "yes"
		if !p.InStock {
			stock = "no"
		}
		rating := "-"
		if p.Rating != nil {
			rating = fmt.Sprintf("%.1f", *p.Rating)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Category, catalog.DisplayPrice(p.Price), rating, stock)
	}
	return w.Flush()
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage the recent-search history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Print recent searches, most recent first",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					hist, closeHist, err := openHistory(cfg)
					if err != nil {
						return err
					}
					defer closeHist()

					entries := hist.Load()
					if len(entries) == 0 {
						fmt.Println("No recent searches")
						return nil
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "TERM\tRESULTS\tWHEN")
					for _, e := range entries {
						fmt.Fprintf(w, "%s\t%d\t%s\n",
							e.Term, e.ResultCount, e.Timestamp.Format("2006-01-02 15:04"))
					}
					return w.Flush()
				},
			},
			{
				Name:  "clear",
				Usage: "Delete all recent searches",
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}
					hist, closeHist, err := openHistory(cfg)
					if err != nil {
						return err
					}
					defer closeHist()
					if err := hist.Clear(); err != nil {
						return fmt.Errorf("clearing history: %w", err)
					}
					fmt.Println("History cleared")
					return nil
				},
			},
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a sample configuration file",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.String("config")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists at %s", path)
			}
			if err := config.SaveTemplate(path); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version",
		Action: func(ctx context.Context, c *cli.Command) error {
			fmt.Println(version)
			return nil
		},
	}
}

func loadCatalog(c *cli.Command, cfg *config.Config) (string, *catalog.Catalog, error) {
	path := c.String("catalog")
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		return "", catalog.Demo(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, cat, nil
}

func openHistory(cfg *config.Config) (*history.Store, func(), error) {
	path := cfg.HistoryDB
	if path == "" {
		p, err := config.DefaultHistoryPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating history directory: %w", err)
	}
	kv, err := history.OpenSQLite(path)
	if err != nil {
		return nil, nil, err
	}
	return history.NewStore(kv, cfg.HistoryLimit), func() { _ = kv.Close() }, nil
}

func parseSort(s string) (catalog.Sort, error) {
	key, dir, hasDir := strings.Cut(s, ":")
	out := catalog.Sort{Key: catalog.SortKey(key), Direction: catalog.Ascending}
	if !catalog.ValidSortKey(out.Key) {
		return out, fmt.Errorf("unknown sort key %q", key)
	}
	if hasDir {
		switch dir {
		case "asc":
		case "desc":
			out.Direction = catalog.Descending
		default:
			return out, fmt.Errorf("unknown sort direction %q", dir)
		}
	}
	return out, nil
}

func defaultConfigPathOrExit() string {
	path, err := config.DefaultConfigPath()
	if err != nil {
		log.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
