// Package browser provides the shared stealth headless-browser helper used
// by every scanner and remover that must render a page (spec §4.3 "Stealth
// browser", §4.5 web-form remover). Every acquisition here is scoped: the
// browser context is always released on every exit path via the returned
// Session's Close, never leaking a chromedp allocator.
package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultNavigationTimeout bounds a single page navigation / wait-for-idle
// pass (spec §4.3/§5 default 30s).
const DefaultNavigationTimeout = 30 * time.Second

// userAgents and viewports are the small pool of desktop fingerprints a
// session picks randomly from, so repeated scans don't all present the
// identical signature (spec §4.3).
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
}

type viewport struct{ width, height int64 }

var viewports = []viewport{
	{1920, 1080},
	{1536, 864},
	{1440, 900},
}

// Session wraps a chromedp allocator + browser context, pre-configured to
// evade common automation fingerprints: a spoofed user agent and viewport,
// en-US locale, America/New_York timezone, and an init script clearing
// navigator.webdriver and spoofing plugins/languages.
type Session struct {
	allocCancel context.CancelFunc
	ctxCancel   context.CancelFunc
	Ctx         context.Context
}

// stealthInitScript runs before every page load in the session, matching
// the fingerprint evasions spec §4.3 names.
const stealthInitScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
`

// New opens a fresh stealth browser session. Call Close to release the
// browser, its allocator, and any temporary profile directory.
func New(ctx context.Context) (*Session, error) {
	ua := userAgents[rand.Intn(len(userAgents))]
	vp := viewports[rand.Intn(len(viewports))]

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.UserAgent(ua),
			chromedp.WindowSize(int(vp.width), int(vp.height)),
		)...,
	)

	browserCtx, ctxCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			if _, err := page.AddScriptToEvaluateOnNewDocument(stealthInitScript).Do(ctx); err != nil {
				return err
			}
			if err := emulation.SetLocaleOverride().WithLocale("en-US").Do(ctx); err != nil {
				return err
			}
			return emulation.SetTimezoneOverride("America/New_York").Do(ctx)
		}),
	); err != nil {
		ctxCancel()
		allocCancel()
		return nil, err
	}

	return &Session{allocCancel: allocCancel, ctxCancel: ctxCancel, Ctx: browserCtx}, nil
}

// Close releases the browser context and its allocator. Safe to call
// multiple times.
func (s *Session) Close() {
	if s.ctxCancel != nil {
		s.ctxCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
}

// Navigate loads url, waits for the page to settle, and returns both the
// full rendered HTML and the visible body text. The navigation context is
// derived from the session's own browser context (s.Ctx), not the caller's
// ctx: chromedp.Run resolves the browser handle via FromContext, and that
// handle only lives on s.Ctx. The caller's ctx is still honored for early
// cancellation.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) (html, bodyText string, err error) {
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	navCtx, cancel := context.WithTimeout(s.Ctx, timeout)
	defer cancel()

	if ctx != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-navCtx.Done():
			}
		}()
	}

	err = chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(500*time.Millisecond), // settle after load, approximates network-idle
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Text("body", &bodyText, chromedp.ByQuery, chromedp.NodeVisible),
	)
	return html, bodyText, err
}

// RandomDelay sleeps a uniform random interval (default 2-5s) between scans
// to avoid rate limiting, per spec §4.3.
func RandomDelay(ctx context.Context) {
	min, max := 2000, 5000
	d := time.Duration(min+rand.Intn(max-min)) * time.Millisecond
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
