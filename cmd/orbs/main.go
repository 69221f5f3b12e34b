// orbs - Sphere ray tracer
// Render JSON or glTF sphere scenes to PNG, raw RGBA, or your terminal.
//
// Viewer controls:
//
//	+/-         - Zoom in/out
//	D           - Cycle reflection depth (0-5)
//	R           - Reset zoom and depth
//	Esc/Q       - Quit
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orbs",
		Short: "Ray trace sphere scenes",
		Long: "orbs traces scenes made of spheres lit by ambient, point and directional lights,\n" +
			"with shadows, Phong highlights and mirror reflections.\n\n" +
			"Scenes are JSON descriptions or glTF files (.gltf/.glb).",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCmd(), newViewCmd())
	return root
}
