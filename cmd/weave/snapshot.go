package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weave/pkg/snapshot"
)

func snapshotCmd(a *app) *cobra.Command {
	var (
		rawURL string
		name   string
		dir    string
		wait   time.Duration
		s3     struct {
			bucket, prefix, region, endpoint string
		}
	)

	cmd := &cobra.Command{
		Use:   "snapshot [component]",
		Short: "Render a component and save the HTML",
		Long: `Mount a component, let it run for a moment so fetches and timers
can land, and save the rendered document as <name>.html.

Snapshots go to the snapshot directory, or to S3 when a bucket is
configured. S3 credentials are read from AWS_ACCESS_KEY_ID,
AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.

Examples:
  weave snapshot Page2
  weave snapshot StarWarsCharacters --wait 5s
  weave snapshot Counter --url '/?count=7' --s3-bucket my-snapshots --s3-region us-east-1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &a.cfg.Snapshot
			if dir != "" {
				cfg.Dir = dir
			}
			if s3.bucket != "" {
				cfg.S3.Bucket = s3.bucket
			}
			if s3.prefix != "" {
				cfg.S3.Prefix = s3.prefix
			}
			if s3.region != "" {
				cfg.S3.Region = s3.region
			}
			if s3.endpoint != "" {
				cfg.S3.Endpoint = s3.endpoint
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			root := a.rootName(args)
			if name == "" {
				name = root
			}
			return a.snapshot(cmd, root, rawURL, name, wait)
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "/", "Initial host location, including query parameters")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Snapshot name (default: the component name)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Snapshot directory (default from weave.yaml)")
	cmd.Flags().DurationVarP(&wait, "wait", "w", 2*time.Second, "How long to run before capturing")
	cmd.Flags().StringVar(&s3.bucket, "s3-bucket", "", "Upload to this S3 bucket")
	cmd.Flags().StringVar(&s3.prefix, "s3-prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&s3.region, "s3-region", "", "Bucket region")
	cmd.Flags().StringVar(&s3.endpoint, "s3-endpoint", "", "Endpoint of an S3-compatible store")

	return cmd
}

func (a *app) sink() snapshot.Sink {
	s3cfg := a.cfg.Snapshot.S3
	if s3cfg.Bucket == "" {
		return snapshot.DirSink{Dir: a.cfg.SnapshotDir()}
	}
	client := snapshot.NewS3Client(snapshot.S3Config{
		Region:    s3cfg.Region,
		Endpoint:  s3cfg.Endpoint,
		PathStyle: s3cfg.PathStyle,
	})
	return snapshot.NewS3Sink(client, s3cfg.Bucket, s3cfg.Prefix)
}

func (a *app) snapshot(cmd *cobra.Command, root, rawURL, name string, wait time.Duration) error {
	s, err := a.newSession(root, rawURL)
	if err != nil {
		return err
	}
	defer s.close()

	// Mount before the loop starts so the capture never sees an empty body.
	if err := s.engine.Tick(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- s.engine.Run(ctx) }()

	select {
	case <-time.After(wait):
	case err := <-errc:
		return err
	}

	location, err := snapshot.Take(ctx, s.engine, a.sink(), name)
	cancel()
	if runErr := <-errc; err == nil {
		err = runErr
	}
	if err != nil {
		return err
	}

	success(cmd.OutOrStdout(), "Snapshot of %s written to %s", root, location)
	return nil
}
