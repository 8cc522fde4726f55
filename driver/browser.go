package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserConfig configures the Chrome connection.
type BrowserConfig struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Headless controls the locally launched Chrome. Default: true.
	Headless *bool

	// NavigateTimeout bounds Navigate plus the load wait. Default: 30s.
	NavigateTimeout time.Duration

	Logger *slog.Logger
}

func (c *BrowserConfig) defaults() {
	if c.Headless == nil {
		headless := true
		c.Headless = &headless
	}
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser owns a Rod browser handle and, for locally launched Chrome, the
// launcher that must be cleaned up with it.
type Browser struct {
	cfg     BrowserConfig
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// OpenBrowser launches a local Chrome (or connects to RemoteURL) and
// returns the wrapper.
func OpenBrowser(ctx context.Context, cfg BrowserConfig) (*Browser, error) {
	cfg.defaults()

	b := &Browser{cfg: cfg}

	controlURL := cfg.RemoteURL
	if controlURL == "" {
		b.lnch = launcher.New().Headless(*cfg.Headless)
		u, err := b.lnch.Launch()
		if err != nil {
			return nil, fmt.Errorf("driver: launch chrome: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		if b.lnch != nil {
			b.lnch.Cleanup()
		}
		return nil, fmt.Errorf("driver: connect to chrome: %w", err)
	}
	b.browser = browser
	return b, nil
}

// Page opens a new tab and navigates it to pageURL.
func (b *Browser) Page(ctx context.Context, pageURL string) (*rod.Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("driver: create tab: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("driver: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.cfg.Logger.Warn("driver: wait load timeout", "url", pageURL, "error", err)
	}
	return page, nil
}

// Close closes the browser and cleans up a locally launched Chrome.
func (b *Browser) Close() error {
	err := b.browser.Close()
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	return err
}
