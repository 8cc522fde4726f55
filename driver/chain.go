package driver

import (
	"context"
	"fmt"

	"github.com/HearthWarrio/intentium/session"
)

type stepKind int

const (
	stepClick stepKind = iota
	stepType
)

type step struct {
	kind   stepKind
	phrase string
	text   string
}

// Chain queues intent-addressed actions and performs them against a single
// candidates snapshot, so a multi-step flow does not pay one full DOM pass
// per step. A phrase repeated within one Perform resolves once per snapshot;
// later steps reuse the first resolution. A navigation observed between
// steps invalidates the snapshot, and with it the per-phrase resolutions,
// and triggers exactly one re-collection.
//
// Overrides set on the chain apply for the duration of Perform only; the
// driver's own configuration is restored afterwards.
type Chain struct {
	d     *Driver
	steps []step

	logger      session.Logger
	loggerSet   bool
	consistency *bool
	hashed      *bool
}

// Actions starts an empty chain.
func (d *Driver) Actions() *Chain {
	return &Chain{d: d}
}

// Click queues a left click on the element the phrase resolves to.
func (c *Chain) Click(phrase string) *Chain {
	c.steps = append(c.steps, step{kind: stepClick, phrase: phrase})
	return c
}

// Type queues replacing the resolved element's text with text.
func (c *Chain) Type(phrase, text string) *Chain {
	c.steps = append(c.steps, step{kind: stepType, phrase: phrase, text: text})
	return c
}

// WithLogger overrides the resolution logger for this chain's Perform.
func (c *Chain) WithLogger(l session.Logger) *Chain {
	c.logger = l
	c.loggerSet = true
	return c
}

// WithConsistencyCheck overrides the consistency setting for this Perform.
func (c *Chain) WithConsistencyCheck(on bool) *Chain {
	c.consistency = &on
	return c
}

// WithAllowHashedClasses overrides the hashed-class policy for this Perform.
func (c *Chain) WithAllowHashedClasses(on bool) *Chain {
	c.hashed = &on
	return c
}

// Perform executes the queued steps in order. The first failing step stops
// the chain and its error names the step.
func (c *Chain) Perform(ctx context.Context) error {
	d := c.d

	prevLogger, prevConsistency, prevHashed := d.logger, d.consistency, d.hashed
	if c.loggerSet {
		d.logger = c.logger
	}
	if c.consistency != nil {
		d.consistency = *c.consistency
	}
	if c.hashed != nil {
		d.hashed = *c.hashed
	}
	defer func() {
		d.logger, d.consistency, d.hashed = prevLogger, prevConsistency, prevHashed
	}()

	url, err := d.surface.URL(ctx)
	if err != nil {
		return err
	}
	snap, err := d.snapshot(ctx)
	if err != nil {
		return err
	}
	resolved := make(map[string]*session.Resolved)

	for i, st := range c.steps {
		current, err := d.surface.URL(ctx)
		if err != nil {
			return err
		}
		if current != url {
			url = current
			if snap, err = d.snapshot(ctx); err != nil {
				return err
			}
			resolved = make(map[string]*session.Resolved)
		}

		res, ok := resolved[st.phrase]
		if !ok {
			if res, err = d.resolveInSnapshot(ctx, st.phrase, url, snap); err != nil {
				return fmt.Errorf("driver: chain step %d (%q): %w", i+1, st.phrase, err)
			}
			resolved[st.phrase] = res
		}

		switch st.kind {
		case stepClick:
			err = d.surface.Click(ctx, res.Node)
		case stepType:
			err = d.surface.Type(ctx, res.Node, st.text)
		}
		if err != nil {
			return fmt.Errorf("driver: chain step %d (%q): %w", i+1, st.phrase, err)
		}
	}
	return nil
}
