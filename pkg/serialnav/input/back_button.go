// Package input turns a hardware back button into pop transitions.
package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/internal"
	"github.com/holoplot/go-evdev"
)

// Key event values reported by evdev.
const (
	keyReleased int32 = 0
	keyPressed  int32 = 1
	keyRepeated int32 = 2
)

// BackButtonConfig selects the device and key to watch.
type BackButtonConfig struct {
	DevicePath string
	ButtonCode evdev.EvCode
	CoolDown   time.Duration // Presses closer together than this are ignored
}

// BackButton calls onPress for every debounced press of the configured key.
type BackButton struct {
	cfg     BackButtonConfig
	onPress func()
	now     func() time.Time
	log     *slog.Logger

	mu        sync.Mutex
	lastPress time.Time
}

// NewBackButton creates a watcher. Nothing is opened until Watch.
func NewBackButton(cfg BackButtonConfig, onPress func()) *BackButton {
	if cfg.CoolDown == 0 {
		cfg.CoolDown = constants.DefaultBackCoolDown
	}
	return &BackButton{
		cfg:     cfg,
		onPress: onPress,
		now:     time.Now,
		log:     internal.GetInternalLogger(),
	}
}

// Handle processes one event and reports whether it triggered onPress.
func (b *BackButton) Handle(ev *evdev.InputEvent) bool {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Code != b.cfg.ButtonCode {
		return false
	}

	switch ev.Value {
	case keyPressed:
	case keyReleased, keyRepeated:
		return false
	default:
		b.log.Debug("Unknown back button key value", "value", ev.Value)
		return false
	}

	now := b.now()
	b.mu.Lock()
	if !b.lastPress.IsZero() && now.Sub(b.lastPress) < b.cfg.CoolDown {
		b.mu.Unlock()
		b.log.Debug("Back button press ignored during cool down")
		return false
	}
	b.lastPress = now
	b.mu.Unlock()

	b.onPress()
	return true
}

// Watch opens the device and reads it on a new goroutine until ctx is cancelled
// or the device fails. wg is marked done when the reader exits.
func (b *BackButton) Watch(ctx context.Context, wg *sync.WaitGroup) error {
	dev, err := evdev.Open(b.cfg.DevicePath)
	if err != nil {
		return fmt.Errorf("input: open %s: %w", b.cfg.DevicePath, err)
	}

	var closeOnce sync.Once
	closeDevice := func() {
		closeOnce.Do(func() { dev.Close() })
	}

	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)
		defer closeDevice()

		for {
			ev, err := dev.ReadOne()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
					b.log.Error("Back button device read failed", "device", b.cfg.DevicePath, "error", err)
				}
				return
			}
			b.Handle(ev)
		}
	}()

	go closeOnCancel(ctx, done, closeDevice)

	return nil
}

// closeOnCancel runs closeFn when ctx is cancelled. It returns without calling
// closeFn once done is closed.
func closeOnCancel(ctx context.Context, done <-chan struct{}, closeFn func()) {
	select {
	case <-ctx.Done():
		closeFn()
	case <-done:
	}
}
