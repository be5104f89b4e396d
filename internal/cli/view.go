package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"floormap/internal/geom"
	"floormap/internal/render"
	"floormap/internal/tui"
)

type viewOpts struct {
	floorplan  string // GeoJSON or WKT file shown at launch
	trajectory string // CSV of poses replayed one per frame
}

func addViewFlags(cmd *cobra.Command, opts *viewOpts) {
	cmd.Flags().StringVarP(&opts.floorplan, "floorplan", "f", "", "floorplan file (.geojson, .json, .wkt)")
	cmd.Flags().StringVarP(&opts.trajectory, "trajectory", "t", "", "CSV of x,y,yaw poses to replay")
}

func (c *CLI) viewCommand() *cobra.Command {
	var opts viewOpts
	cmd := &cobra.Command{
		Use:         "view",
		Short:       "Show the live floorplan view in the terminal",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{ownsTerminal: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), opts)
		},
	}
	addViewFlags(cmd, &opts)
	return cmd
}

func (c *CLI) runView(ctx context.Context, opts viewOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ropts, err := cfg.RendererOptions()
	if err != nil {
		return err
	}
	styles, err := cfg.Styles()
	if err != nil {
		return err
	}

	var plan geom.Floorplan
	if opts.floorplan != "" {
		if plan, err = geom.Load(opts.floorplan); err != nil {
			return err
		}
	}
	var poses []geom.Pose
	if opts.trajectory != "" {
		if poses, err = geom.LoadPoses(opts.trajectory); err != nil {
			return err
		}
		logger.Info("trajectory loaded", "path", opts.trajectory, "poses", len(poses))
	}

	overlay := &render.PointList{}
	r := render.New(append(ropts, render.WithLogger(logger), render.WithOverlay(overlay))...)
	// sized on the first window size message
	surface := render.NewFrameSurface(0, 0)
	r.SurfaceCreated(ctx, surface)
	defer func() {
		r.SurfaceDestroyed()
		frames, skipped := r.Stats()
		logger.Info("render stopped", "frames", frames, "skipped", skipped)
	}()

	m := tui.New(tui.Options{
		Renderer:     r,
		Surface:      surface,
		Overlay:      overlay,
		PixelsPerDot: cfg.PixelsPerDot,
		Background:   styles.Background,
		Refresh:      cfg.Interval.Duration,
		Poses:        poses,
		Logger:       logger,
		Plan:         plan,
		PlanPath:     opts.floorplan,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal view: %w", err)
	}
	return nil
}
