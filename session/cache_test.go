package session

import "testing"

func TestCache_HitRequiresFullKeyMatch(t *testing.T) {
	logger := &recordingLogger{}
	res := sampleResolved()

	var c Cache
	c.Put("https://a.test/login", "login field", logger, true, false, res)

	if got, ok := c.Get("https://a.test/login", "login field", logger, true, false); !ok || got != res {
		t.Fatal("expected a cache hit for the identical configuration")
	}

	misses := []struct {
		name        string
		url, phrase string
		logger      Logger
		consistency bool
		hashed      bool
	}{
		{"url changed", "https://a.test/signup", "login field", logger, true, false},
		{"phrase changed", "https://a.test/login", "password field", logger, true, false},
		{"logger changed", "https://a.test/login", "login field", &recordingLogger{}, true, false},
		{"consistency changed", "https://a.test/login", "login field", logger, false, false},
		{"hashed policy changed", "https://a.test/login", "login field", logger, true, true},
	}
	for _, m := range misses {
		if _, ok := c.Get(m.url, m.phrase, m.logger, m.consistency, m.hashed); ok {
			t.Errorf("%s: expected a miss", m.name)
		}
	}
}

func TestCache_IncompleteLocatorsNeverServed(t *testing.T) {
	res := sampleResolved()
	res.CSS = ""

	var c Cache
	c.Put("u", "p", nil, false, false, res)
	if _, ok := c.Get("u", "p", nil, false, false); ok {
		t.Error("an entry missing a locator must not be served")
	}
}

func TestCache_Invalidate(t *testing.T) {
	var c Cache
	c.Put("u", "p", nil, false, false, sampleResolved())
	c.Invalidate()
	if _, ok := c.Get("u", "p", nil, false, false); ok {
		t.Error("expected a miss after Invalidate")
	}
}
