package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/orbs/pkg/models"
	"github.com/taigrr/orbs/pkg/render"
	"github.com/taigrr/orbs/pkg/scene"
)

const maxViewDepth = 5

func newViewCmd() *cobra.Command {
	var fps int

	cmd := &cobra.Command{
		Use:   "view <scene.json|scene.glb>",
		Short: "Trace a scene into the terminal",
		Long: "Trace a scene into the terminal using half-block cells.\n\n" +
			"Controls:\n" +
			"  +/-   Zoom in/out\n" +
			"  d     Cycle reflection depth\n" +
			"  r     Reset view\n" +
			"  Esc/q Quit",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("fps must be positive, got %d", fps)
			}
			return runView(cmd.Context(), args[0], fps)
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Target FPS")

	return cmd
}

// viewState is shared between the event goroutine and the frame loop.
type viewState struct {
	mu            sync.Mutex
	width, height int
	zoom          *ZoomAxis
	depth         int
	dirty         bool
}

func (v *viewState) handleKey(ev uv.KeyPressEvent) (quit bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case ev.MatchString("escape", "ctrl+c", "q"):
		return true
	case ev.MatchString("+", "="):
		v.zoom.In()
	case ev.MatchString("-", "_"):
		v.zoom.Out()
	case ev.MatchString("d"):
		v.depth = (v.depth + 1) % (maxViewDepth + 1)
		v.dirty = true
	case ev.MatchString("r"):
		v.zoom.Reset()
		v.depth = scene.DefaultDepth
		v.dirty = true
	}
	return false
}

func runView(ctx context.Context, scenePath string, fps int) error {
	s, vp, err := models.LoadScene(scenePath)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	fmt.Printf("Loaded: %s (%d spheres, %d lights)\n", filepath.Base(scenePath), len(s.Spheres), len(s.Lights))

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := &viewState{
		width:  width,
		height: height,
		zoom:   NewZoomAxis(fps),
		depth:  scene.DefaultDepth,
		dirty:  true,
	}

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				state.mu.Lock()
				state.width, state.height = ev.Width, ev.Height
				state.dirty = true
				state.mu.Unlock()
			case uv.KeyPressEvent:
				if state.handleKey(ev) {
					cancel()
					return
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(fps)
	var (
		canvas      *render.Canvas
		lastW       int
		lastH       int
		needsResize bool
	)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		state.mu.Lock()
		moving := state.zoom.Update()
		redraw := moving || state.dirty
		w, h := state.width, state.height
		zoom, depth := state.zoom.Position, state.depth
		state.dirty = false
		state.mu.Unlock()

		if w != lastW || h != lastH {
			cw, ch := render.TerminalCanvasSize(w, h)
			canvas = render.NewCanvas(cw, ch)
			lastW, lastH = w, h
			needsResize = true
		}

		if redraw && w > 0 && h > 0 {
			if needsResize {
				term.Erase()
				term.Resize(w, h)
				needsResize = false
			}

			r := render.NewRenderer(s, vp.FitAspect(canvas.Width, canvas.Height).Zoom(zoom))
			r.Depth = depth
			r.Render(canvas)

			canvas.Draw(term, uv.Rect(0, 0, w, h))
			if err := term.Display(); err != nil {
				cleanup()
				return fmt.Errorf("display: %w", err)
			}
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
