package pdf

import (
	"context"
	"fmt"

	"bitbucket.org/mmdatafocus/invoice_backend/config"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Backend launches a headless browser for one export call. Implementations
// must hand back a cleanup that is safe to call exactly once and tears the
// whole browser process down.
type Backend interface {
	Name() string
	Launch(ctx context.Context) (*rod.Browser, func(), error)
}

// LocalBrowser drives a Chrome/Chromium already installed on the host.
// Bin may be empty, in which case the binary is discovered on PATH.
type LocalBrowser struct {
	Bin string
}

func (b *LocalBrowser) Name() string { return "local-browser" }

func (b *LocalBrowser) Launch(ctx context.Context) (*rod.Browser, func(), error) {
	bin := b.Bin
	if bin == "" {
		found, ok := launcher.LookPath()
		if !ok {
			return nil, nil, fmt.Errorf("%w: no chrome/chromium binary found on this host", ErrBackendUnavailable)
		}
		bin = found
	}
	return connectBrowser(ctx, bin)
}

// PackagedBrowser uses rod's managed Chromium build, downloading it on first
// use. This is the backend for constrained runtimes (Cloud Run, Lambda) that
// ship without a system browser.
type PackagedBrowser struct{}

func (b *PackagedBrowser) Name() string { return "packaged-browser" }

func (b *PackagedBrowser) Launch(ctx context.Context) (*rod.Browser, func(), error) {
	bin, err := launcher.NewBrowser().Get()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: managed chromium unavailable: %v", ErrBackendUnavailable, err)
	}
	return connectBrowser(ctx, bin)
}

func connectBrowser(ctx context.Context, bin string) (*rod.Browser, func(), error) {
	l := launcher.New().Bin(bin).Headless(true).NoSandbox(true)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: launch %s: %v", ErrBackendUnavailable, bin, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, nil, fmt.Errorf("%w: connect %s: %v", ErrBackendUnavailable, bin, err)
	}

	cleanup := func() {
		_ = browser.Close()
		l.Cleanup()
	}
	return browser, cleanup, nil
}

// BackendFromConfig picks the browser strategy once at startup.
func BackendFromConfig(cfg *config.PDFConfig) Backend {
	if cfg.ServerlessMode {
		return &PackagedBrowser{}
	}
	return &LocalBrowser{Bin: cfg.ChromeBin}
}
