package app

import (
	"context"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/guidoenr/ledwall/internal/render"
)

// startInputListener stops the app on Esc, Ctrl-C or q. The terminal is in
// raw mode while listening, so Ctrl-C arrives here instead of as SIGINT.
func (a *App) startInputListener(ctx context.Context, stop context.CancelCauseFunc) {
	if err := keyboard.Open(); err != nil {
		a.log.Printf("keyboard input disabled: %v", err)
		return
	}

	closeOnce := &sync.Once{}
	release := func() {
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}
	go func() {
		<-ctx.Done()
		release()
	}()

	go func() {
		defer release()
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if ctx.Err() != nil {
				return
			}
			if key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q' {
				stop(render.ErrRendererQuit)
				return
			}
		}
	}()
}
