// weatherday shows the current weather for a city or for the current
// location in a single terminal screen.
//
// Usage:
//
//	weatherday [flags]
//
// Flags:
//
//	-config string    Path to configuration file (default: ~/.config/weatherday/config.toml)
//	-theme string     Colour theme (default|midnight or a name from -config)
//	-city string      Print the weather for a city and exit
//	-here             Print the weather for the current location and exit
//	-grant-location   Record location permission as granted and exit
//	-deny-location    Record location permission as denied and exit
//	-reset-location   Forget the location permission decision and exit
//	-no-mouse         Disable mouse support
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/weatherday/pkg/app"
	"gitlab.com/tinyland/lab/weatherday/pkg/cache"
	"gitlab.com/tinyland/lab/weatherday/pkg/config"
	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/network"
	"gitlab.com/tinyland/lab/weatherday/pkg/terminal"
	"gitlab.com/tinyland/lab/weatherday/pkg/theme"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to configuration file")
		themeName     = flag.String("theme", "", "Colour theme (overrides ui.theme)")
		city          = flag.String("city", "", "Print the weather for a city and exit")
		here          = flag.Bool("here", false, "Print the weather for the current location and exit")
		grantLocation = flag.Bool("grant-location", false, "Record location permission as granted and exit")
		denyLocation  = flag.Bool("deny-location", false, "Record location permission as denied and exit")
		resetLocation = flag.Bool("reset-location", false, "Forget the location permission decision and exit")
		noMouse       = flag.Bool("no-mouse", false, "Disable mouse support")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("weatherday %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *themeName != "" {
		cfg.UI.Theme = *themeName
	}

	oneShot := *city != "" || *here
	interactive := !oneShot && !*grantLocation && !*denyLocation && !*resetLocation

	logger, closeLog, err := setupLogging(cfg, *verbose, !interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	perms := location.NewSettingsPermissions(location.SettingsConfig{
		Path:           cfg.Location.PermissionFile,
		Enabled:        cfg.Location.Enabled,
		GrantOnRequest: cfg.Location.GrantOnRequest,
		Logger:         logger,
	})
	locator := newLocator(cfg, logger)

	// Permission management does not need a valid weather setup.
	switch {
	case *grantLocation:
		exitOn(perms.Set(location.StatusGranted), "grant location permission")
		fmt.Printf("location permission granted (%s)\n", perms.Path())
		return
	case *denyLocation:
		exitOn(perms.Set(location.StatusDenied), "deny location permission")
		exitOn(locator.Forget(), "clear cached position")
		fmt.Printf("location permission denied (%s)\n", perms.Path())
		return
	case *resetLocation:
		exitOn(perms.Reset(), "reset location permission")
		exitOn(locator.Forget(), "clear cached position")
		fmt.Printf("location permission reset (%s)\n", perms.Path())
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	client := weather.NewClient(weather.ClientConfig{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Timeout: cfg.Weather.Timeout.Duration,
		Logger:  logger,
	})

	lipgloss.SetColorProfile(terminal.ColorProfile(os.Stdout.Fd()))

	if oneShot {
		var q weather.Query
		if *here {
			q, err = resolveHere(ctx, perms, locator)
		} else {
			q, err = weather.CityQuery(*city)
		}
		if err == nil {
			err = printLookup(ctx, os.Stdout, client, q)
		}
		if err != nil {
			logger.Error("lookup failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if !terminal.Interactive(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -city or -here for non-interactive lookups")
		os.Exit(1)
	}

	opts := app.Options{
		Context: ctx,
		Theme:   loadTheme(cfg, logger),
		Logger:  logger,
	}
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.UI.Mouse && !*noMouse {
		zones := zone.New()
		defer zones.Close()
		opts.Zones = zones
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	screen := app.New(app.Deps{
		Weather:     client,
		Network:     network.NewInterfaceChecker(),
		Permissions: perms,
		Locator:     locator,
	}, opts)

	logger.Info("starting weatherday", "version", version, "theme", opts.Theme.Name)
	p := tea.NewProgram(screen, programOpts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("TUI error", "error", err)
		os.Exit(1)
	}
}

// setupLogging returns a text logger writing to the configured log file,
// and also to stderr when alsoStderr is set. The TUI owns the terminal, so
// interactive runs log to the file only.
func setupLogging(cfg *config.Config, verbose, alsoStderr bool) (*slog.Logger, func(), error) {
	level, err := cfg.General.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	if err := ensureLogDir(cfg.General.LogFile); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	var w io.Writer = logFile
	if alsoStderr {
		w = io.MultiWriter(os.Stderr, logFile)
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	return logger, func() { logFile.Close() }, nil
}

// newLocator builds the configured position source behind the disk cache.
// A zero cache_ttl, or a cache directory that cannot be opened, disables
// caching.
func newLocator(cfg *config.Config, logger *slog.Logger) *location.CachedLocator {
	var base location.Locator
	switch cfg.Location.Provider {
	case config.ProviderStatic:
		base = location.StaticLocator{Position: location.Coordinates{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		}}
	default:
		base = location.NewIPLocator(cfg.Location.IPLookupURL, cfg.Weather.Timeout.Duration, logger)
	}

	ttl := cfg.Location.CacheTTL.Duration
	if ttl <= 0 {
		return location.NewCachedLocator(base, nil, logger)
	}
	store, err := cache.NewStore(cache.StoreConfig{
		Dir:        cfg.General.CacheDir,
		DefaultTTL: ttl,
	})
	if err != nil {
		logger.Warn("position cache disabled", "dir", cfg.General.CacheDir, "error", err)
		store = nil
	}
	return location.NewCachedLocator(base, store, logger)
}

// loadTheme resolves ui.theme_file, then ui.theme. Unknown names fall back
// to the default palette.
func loadTheme(cfg *config.Config, logger *slog.Logger) theme.Theme {
	if cfg.UI.ThemeFile != "" {
		t, err := theme.LoadFile(cfg.UI.ThemeFile)
		if err == nil {
			return t
		}
		logger.Warn("failed to load theme file", "path", cfg.UI.ThemeFile, "error", err)
	}
	if !theme.Has(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme, "available", theme.Names())
	}
	return theme.Get(cfg.UI.Theme)
}

func ensureLogDir(logFile string) error {
	dir := filepath.Dir(logFile)
	return os.MkdirAll(dir, 0755)
}

func exitOn(err error, what string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", what, err)
		os.Exit(1)
	}
}
