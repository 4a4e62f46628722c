// Package checkout turns a cart into an order summary and hands it off to an
// external chat channel for manual fulfilment.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"mixtape.GO/service/cart"
)

var ErrEmptyCart = errors.New("checkout: cart is empty")

// Cart is the part of the cart store checkout needs.
type Cart interface {
	TakeAndClear(ctx context.Context) (cart.Snapshot, error)
}

// Launcher opens the hand-off link. No response is awaited.
type Launcher interface {
	Launch(ctx context.Context, url string) error
}

type LauncherFunc func(ctx context.Context, url string) error

func (f LauncherFunc) Launch(ctx context.Context, url string) error {
	return f(ctx, url)
}

// LinkLauncher does nothing; the caller delivers the link (HTTP response, redirect).
type LinkLauncher struct{}

func (LinkLauncher) Launch(context.Context, string) error { return nil }

// WriterLauncher prints the link, for terminals.
type WriterLauncher struct {
	W io.Writer
}

func (l WriterLauncher) Launch(_ context.Context, url string) error {
	_, err := fmt.Fprintln(l.W, url)
	return err
}

type Config struct {
	BaseURL  string
	Phone    string
	Template Template
}

type Service struct {
	cfg      Config
	launcher Launcher
	log      *zap.Logger
}

func NewService(cfg Config, launcher Launcher, log *zap.Logger) *Service {
	if launcher == nil {
		launcher = LinkLauncher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cfg: cfg, launcher: launcher, log: log}
}

type Result struct {
	Message  string  `json:"message"`
	URL      string  `json:"url"`
	Items    int     `json:"items"`
	Subtotal float64 `json:"subtotal"`
}

// Preview composes the summary of a cart snapshot without launching anything.
func (s *Service) Preview(snap cart.Snapshot) (Result, error) {
	return s.compose(snap)
}

// Checkout empties the cart and launches the hand-off of what it held. The
// clear is not undone when the launch fails; delivery is not confirmed.
func (s *Service) Checkout(ctx context.Context, c Cart) (Result, error) {
	snap, err := c.TakeAndClear(ctx)
	if len(snap.Entries) == 0 {
		if err == nil {
			err = ErrEmptyCart
		}
		return Result{}, err
	}
	res, _ := s.compose(snap)
	if err := s.launcher.Launch(ctx, res.URL); err != nil {
		s.log.Warn("checkout hand-off failed", zap.Error(err))
	}
	if err != nil {
		return res, fmt.Errorf("checkout: %w", err)
	}
	s.log.Info("checkout handed off", zap.Int("items", res.Items), zap.Float64("subtotal", res.Subtotal))
	return res, nil
}

func (s *Service) compose(snap cart.Snapshot) (Result, error) {
	if len(snap.Entries) == 0 {
		return Result{}, ErrEmptyCart
	}
	msg := Compose(snap.Entries, snap.Subtotal, s.cfg.Template)
	return Result{
		Message:  msg,
		URL:      HandoffURL(s.cfg.BaseURL, s.cfg.Phone, msg),
		Items:    snap.TotalItems,
		Subtotal: snap.Subtotal,
	}, nil
}
