package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"floormap/internal/geom"
	"floormap/internal/render"
)

const (
	defaultSnapshotWidth  = 800
	defaultSnapshotHeight = 600
)

type snapshotOpts struct {
	floorplan string
	pose      string // "x,y,yaw", yaw in radians
	output    string
	width     int
	height    int
}

func (c *CLI) snapshotCommand() *cobra.Command {
	opts := snapshotOpts{
		output: "floormap.png",
		width:  defaultSnapshotWidth,
		height: defaultSnapshotHeight,
	}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame around a pose to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshot(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.floorplan, "floorplan", "f", "", "floorplan file (.geojson, .json, .wkt)")
	cmd.Flags().StringVarP(&opts.pose, "pose", "p", "0,0,0", "device pose as x,y,yaw (meters, radians)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PNG path")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "image height in pixels")
	_ = cmd.MarkFlagRequired("floorplan")
	return cmd
}

func (o snapshotOpts) validate() error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	if o.output == "" {
		return errors.New("output path is empty")
	}
	return nil
}

func (c *CLI) runSnapshot(ctx context.Context, opts snapshotOpts) error {
	logger := loggerFromContext(ctx)
	if err := opts.validate(); err != nil {
		return err
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	ropts, err := cfg.RendererOptions()
	if err != nil {
		return err
	}
	pose, err := geom.ParsePose(opts.pose)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	plan, err := geom.Load(opts.floorplan)
	if err != nil {
		return err
	}
	logger.Debug("floorplan loaded", "path", opts.floorplan, "polygons", len(plan.Polygons))

	r := render.New(append(ropts, render.WithLogger(logger))...)
	r.SetFloorplan(plan.Polygons)
	r.UpdateCameraMatrix(pose.X, pose.Y, pose.Yaw)

	// Attach without starting the loop and draw exactly one frame.
	surface := render.NewFrameSurface(opts.width, opts.height)
	r.SurfaceChanged(surface)
	canvas, err := r.LockCanvas()
	if err != nil {
		return err
	}
	r.Draw(canvas)
	r.ReleaseCanvas(canvas)

	frame := surface.Latest()
	if frame == nil {
		return errors.New("no frame was rendered")
	}
	if err := gg.SavePNG(opts.output, frame.Image); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Wrote %s", opts.output))
	return nil
}
