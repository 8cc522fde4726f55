// Package driver is the user-facing facade: it resolves intent phrases
// against a live page, synthesizes stable locators for the elected element
// and performs actions on it. Production use wraps a Rod page; any Surface
// implementation works.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/HearthWarrio/intentium/intent"
	"github.com/HearthWarrio/intentium/locator"
	"github.com/HearthWarrio/intentium/match"
	"github.com/HearthWarrio/intentium/session"
)

// Config configures a Driver. The zero value resolves English phrases with
// the built-in dictionary, default scoring and no heuristics, logging and
// consistency checking disabled.
type Config struct {
	// Resolver maps phrases to roles. Nil uses the built-in dictionary.
	Resolver intent.Resolver

	// Language selects the dictionary table. Default: English.
	Language intent.Language

	// Scorer ranks candidates per role. Nil uses the default scorer.
	Scorer match.Scorer

	// Heuristics extend selection with restrictions, preferences and
	// score adjustments. They are normalized (ordered, deduplicated) once.
	Heuristics []match.Heuristic

	// Logger receives every successful resolution. Nil disables logging.
	Logger session.Logger

	// ConsistencyCheck re-executes both synthesized locators after each
	// resolution and fails when either lands on a different element.
	ConsistencyCheck bool

	// AllowHashedClasses permits hashed class tokens as a last-resort
	// locator anchor.
	AllowHashedClasses bool

	// Log is the driver's own diagnostic logger. Nil uses slog.Default().
	Log *slog.Logger
}

// Driver resolves intents on one Surface. Not safe for concurrent use; it
// is expected to be driven from a single test goroutine.
type Driver struct {
	surface  Surface
	log      *slog.Logger
	resolver intent.Resolver
	language intent.Language
	selector *match.Selector

	logger      session.Logger
	consistency bool
	hashed      bool

	cache session.Cache
}

// New builds a driver over surface.
func New(surface Surface, cfg Config) *Driver {
	if cfg.Resolver == nil {
		cfg.Resolver = intent.NewDictionary()
	}
	if cfg.Language == "" {
		cfg.Language = intent.LanguageEN
	}
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	return &Driver{
		surface:     surface,
		log:         cfg.Log,
		resolver:    cfg.Resolver,
		language:    cfg.Language,
		selector:    match.NewSelector(cfg.Scorer, cfg.Heuristics...),
		logger:      cfg.Logger,
		consistency: cfg.ConsistencyCheck,
		hashed:      cfg.AllowHashedClasses,
	}
}

// WithLogger replaces the resolution logger. Cached resolutions made under
// a different logger are not served.
func (d *Driver) WithLogger(l session.Logger) *Driver {
	d.logger = l
	return d
}

// WithConsistencyCheck toggles locator re-execution after each resolution.
func (d *Driver) WithConsistencyCheck(on bool) *Driver {
	d.consistency = on
	return d
}

// WithAllowHashedClasses toggles the hashed-class last resort.
func (d *Driver) WithAllowHashedClasses(on bool) *Driver {
	d.hashed = on
	return d
}

// WithLanguage switches the dictionary language for subsequent calls.
func (d *Driver) WithLanguage(lang intent.Language) *Driver {
	d.language = lang
	return d
}

// Resolve elects the element for phrase and synthesizes its locators.
// Consecutive calls for the same phrase on an unchanged page and
// configuration are served from a one-entry cache, so asking for the XPath
// and then the CSS of the same intent costs a single candidates pass.
func (d *Driver) Resolve(ctx context.Context, phrase string) (*session.Resolved, error) {
	url, err := d.surface.URL(ctx)
	if err != nil {
		return nil, err
	}

	if res, ok := d.cache.Get(url, phrase, d.logger, d.consistency, d.hashed); ok {
		return res, nil
	}

	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	res, err := d.resolveInSnapshot(ctx, phrase, url, snap)
	if err != nil {
		return nil, err
	}

	d.cache.Put(url, phrase, d.logger, d.consistency, d.hashed, res)
	return res, nil
}

// XPath resolves phrase and returns the synthesized XPath.
func (d *Driver) XPath(ctx context.Context, phrase string) (string, error) {
	res, err := d.Resolve(ctx, phrase)
	if err != nil {
		return "", err
	}
	return res.XPath, nil
}

// CSS resolves phrase and returns the synthesized CSS selector.
func (d *Driver) CSS(ctx context.Context, phrase string) (string, error) {
	res, err := d.Resolve(ctx, phrase)
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// Element resolves phrase and returns the live node handle.
func (d *Driver) Element(ctx context.Context, phrase string) (match.Handle, error) {
	res, err := d.Resolve(ctx, phrase)
	if err != nil {
		return nil, err
	}
	return res.Node, nil
}

// Click resolves phrase and left-clicks the elected element.
func (d *Driver) Click(ctx context.Context, phrase string) error {
	res, err := d.Resolve(ctx, phrase)
	if err != nil {
		return err
	}
	return d.surface.Click(ctx, res.Node)
}

// Type resolves phrase and replaces the elected element's text with text.
func (d *Driver) Type(ctx context.Context, phrase, text string) error {
	res, err := d.Resolve(ctx, phrase)
	if err != nil {
		return err
	}
	return d.surface.Type(ctx, res.Node, text)
}

func (d *Driver) snapshot(ctx context.Context) (*match.Snapshot, error) {
	candidates, err := d.surface.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("driver: collect candidates: %w", err)
	}
	return match.NewSnapshot(candidates), nil
}

// resolveInSnapshot runs the full pipeline against an existing snapshot:
// phrase to role, role to element, element to locators, then the optional
// consistency check and resolution logging.
func (d *Driver) resolveInSnapshot(ctx context.Context, phrase, url string, snap *match.Snapshot) (*session.Resolved, error) {
	role, err := d.resolver.Resolve(phrase, d.language)
	if err != nil {
		return nil, err
	}

	m, err := d.selector.Select(role, snap)
	if err != nil {
		return nil, err
	}

	node, ok := snap.HandleFor(m.Element)
	if !ok {
		return nil, &ErrInternalInconsistency{Reason: "elected element missing from its snapshot"}
	}

	b := locator.Builder{AllowHashedClasses: d.hashed}
	res := &session.Resolved{
		URL:     url,
		Phrase:  phrase,
		Role:    role,
		Element: m.Element,
		Node:    node,
		XPath:   b.XPath(m.Element, snap),
		CSS:     b.CSS(m.Element, snap),
		Score:   m.Score,
	}

	if d.consistency {
		if err := session.NewVerifier(d.surface).Verify(ctx, res); err != nil {
			return nil, err
		}
	}

	if d.logger != nil {
		if err := d.logger.LogResolved(ctx, res); err != nil {
			d.log.Warn("driver: log resolved failed", "intent", phrase, "error", err)
		}
	}
	return res, nil
}
