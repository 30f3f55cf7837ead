package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before Chrome is restarted.
// Chrome's memory baseline grows with every page even when pages are closed.
const DefaultMaxPages = 75

// session owns one Chrome process and restarts it after maxPages renders.
// It is safe for concurrent use.
type session struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int64
	maxPages int64
}

func newSession(maxPages int64) (*session, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	s := &session{maxPages: maxPages}
	if err := s.launch(); err != nil {
		return nil, err
	}
	return s, nil
}

// acquire returns the browser to render the next page with, restarting
// Chrome first when the render budget is spent.
func (s *session) acquire() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser == nil {
		return nil, fmt.Errorf("browser is closed")
	}
	if s.rendered >= s.maxPages {
		s.restart()
	}
	s.rendered++
	return s.browser, nil
}

// restart swaps in a fresh browser. The old one is kept if launching fails.
// Must be called with mu held.
func (s *session) restart() {
	oldBrowser, oldLauncher := s.browser, s.launcher
	if err := s.launch(); err != nil {
		s.browser, s.launcher = oldBrowser, oldLauncher
		return
	}
	_ = oldBrowser.Close()
	oldLauncher.Kill()
	s.rendered = 0
}

// launch starts Chrome with flags that keep background tabs responsive.
func (s *session) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	s.browser, s.launcher = b, l
	return nil
}

func (s *session) pid() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.launcher == nil {
		return 0
	}
	return s.launcher.PID()
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher = nil
	}
	return err
}
