package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gallerymaze/pkg/engine/input"
	"gallerymaze/pkg/engine/terminal"
	"gallerymaze/pkg/game/archive"
	"gallerymaze/pkg/game/catalog"
	"gallerymaze/pkg/game/devtools"
	"gallerymaze/pkg/game/generator"
	"gallerymaze/pkg/game/locale"
	ebitenviewer "gallerymaze/pkg/game/renderer/ebiten"
	"gallerymaze/pkg/game/renderer/tui"
	"gallerymaze/pkg/game/session"
)

// loadCatalog reads the catalog file, or the built-in gallery catalog if path is empty,
// and applies the required-count overrides.
func loadCatalog(path string, overrides []catalog.Override) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if path != "" {
		var err error
		if cat, err = catalog.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cat.Apply(overrides...); err != nil {
		return nil, err
	}
	return cat, nil
}

func die(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func main() {
	defaults := generator.DefaultConfig()

	width := flag.Int("width", defaults.Width, "grid width in cells")
	height := flag.Int("height", defaults.Height, "grid height in cells")
	startX := flag.Int("start-x", defaults.StartX, "carve start column")
	startY := flag.Int("start-y", defaults.StartY, "carve start row")
	fill := flag.Float64("fill", defaults.Fill, "fraction of cells to carve, in (0, 1]")
	attempts := flag.Int("attempts", defaults.MaxAttempts, "maximum generation attempts")
	seed := flag.Int64("seed", 0, "random seed (0 seeds from the clock)")
	catalogPath := flag.String("catalog", "", "room catalog JSON file (default: built-in gallery catalog)")
	dumpPath := flag.String("dump", "", "write a layout debug dump to this file")
	htmlPath := flag.String("html", "", "write the layout as an HTML page to this file")
	showcase := flag.String("showcase", "", "show one of each room whose id contains this text ('*' for all) and exit")
	plain := flag.Bool("plain", false, "disable colour output")
	gui := flag.Bool("gui", false, "open the layout in a window")
	serve := flag.String("serve", "", "share the layout with websocket participants on this address, e.g. :8080")
	archivePath := flag.String("archive", "", "store every generated layout in this bbolt file")
	replay := flag.Int64("replay", 0, "show the layout archived under this positive seed instead of generating (0 generates)")

	var binds []input.Binding
	flag.Func("bind", locale.Get("USAGE_BIND"), func(s string) error {
		b, err := input.ParseBinding(s)
		if err != nil {
			return err
		}
		binds = append(binds, b)
		return nil
	})

	var overrides []catalog.Override
	flag.Func("require", locale.Get("USAGE_REQUIRE"), func(s string) error {
		r, err := catalog.ParseOverride(s)
		if err != nil {
			return err
		}
		overrides = append(overrides, r)
		return nil
	})
	flag.Parse()

	out := tui.New()
	out.SetPlain(*plain || !terminal.IsTerminal())

	cat, err := loadCatalog(*catalogPath, overrides)
	if err != nil {
		die(err)
	}

	if *showcase != "" {
		filter := *showcase
		if filter == "*" {
			filter = ""
		}
		out.Render(os.Stdout, devtools.Showcase(cat, filter))
		return
	}

	cfg := generator.Config{
		Width:       *width,
		Height:      *height,
		StartX:      *startX,
		StartY:      *startY,
		Fill:        *fill,
		MaxAttempts: *attempts,
		Seed:        *seed,
	}

	if *serve != "" {
		if err := serveLayout(cfg, cat, *serve, out); err != nil {
			die(err)
		}
		return
	}

	if *replay < 0 {
		die(errors.New(locale.Get("SEED_NOT_POSITIVE")))
	}
	if *archivePath != "" && *seed < 0 {
		die(errors.New(locale.Get("SEED_NOT_POSITIVE")))
	}

	var store *archive.Archive
	if *archivePath != "" {
		if store, err = archive.Open(*archivePath); err != nil {
			die(err)
		}
		defer store.Close()
	} else if *replay != 0 {
		die(errors.New(locale.Get("REPLAY_NEEDS_ARCHIVE")))
	}

	var res *generator.Result
	var genErr error
	if *replay != 0 {
		if res, err = store.Load(*replay); err != nil {
			die(err)
		}
	} else {
		gen, err := generator.New(cfg, cat)
		if err != nil {
			die(err)
		}
		res, genErr = gen.Generate()
		if store != nil && genErr == nil {
			if err := store.Save(res); err != nil {
				die(err)
			}
			fmt.Println(fmt.Sprintf(locale.Get("ARCHIVED"), res.Seed, *archivePath))
		}
	}
	out.Render(os.Stdout, res)

	if *dumpPath != "" {
		path, err := devtools.DumpLayoutToFile(res, *dumpPath)
		if err != nil {
			die(err)
		}
		fmt.Println(fmt.Sprintf(locale.Get("DUMP_WRITTEN"), path))
	}
	if *htmlPath != "" {
		path, err := devtools.SaveLayoutHTML(res, *htmlPath)
		if err != nil {
			die(err)
		}
		fmt.Println(fmt.Sprintf(locale.Get("DUMP_WRITTEN"), path))
	}

	if *gui {
		regenerate := func() (*generator.Result, error) {
			next := cfg
			next.Seed = 0
			g, err := generator.New(next, cat)
			if err != nil {
				return nil, err
			}
			res, err := g.Generate()
			if store != nil && err == nil {
				err = store.Save(res)
			}
			return res, err
		}
		if err := ebitenviewer.Run(ebitenviewer.NewViewer(res, regenerate, binds...)); err != nil {
			die(err)
		}
	}

	if genErr != nil {
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// serveLayout generates the layout off the request path and shares it with
// every websocket participant until interrupted.
func serveLayout(cfg generator.Config, cat *catalog.Catalog, addr string, out *tui.TUIRenderer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, err := generator.New(cfg, cat)
	if err != nil {
		return err
	}

	host := session.NewHost(gen, session.NewHub())
	mux := http.NewServeMux()
	mux.Handle("/stream", host)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	if err := host.Start(ctx); err != nil {
		return err
	}
	go func() {
		<-host.Done()
		if res := host.Outcome().Result; res != nil {
			out.Render(os.Stdout, res)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Println(fmt.Sprintf(locale.Get("SERVING"), addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
