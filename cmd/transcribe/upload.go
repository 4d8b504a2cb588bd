package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jorjao81/zh-learn/uploader"
)

func (a *app) uploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload audio files to blob storage",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "folder",
				Aliases: []string{"f"},
				Usage:   "The folder to upload to.",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print destinations without uploading",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "exit with status 2 when any upload fails",
			},
			&cli.StringFlag{
				Name:  "content-type",
				Usage: "content type for every file instead of detecting it",
			},
		},
		Action: a.upload,
	}
}

func (a *app) upload(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("Error: no files to upload", exitError)
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return cli.Exit("Error: "+err.Error(), exitError)
	}

	store, err := a.newStore(ctx, cfg, cmd.Bool("dry-run"))
	if err != nil {
		return cli.Exit("Error: "+err.Error(), exitError)
	}

	up, err := uploader.New(cfg, store,
		uploader.WithLogger(a.logger),
		uploader.WithReporter(uploader.NewTextReporter(a.stdout, a.stderr)),
		uploader.WithContentType(cmd.String("content-type")),
	)
	if err != nil {
		return cli.Exit("Error: "+err.Error(), exitError)
	}

	report := up.Upload(ctx, files, cmd.String("folder"))
	if report.HasFailures() && cmd.Bool("fail-on-error") {
		return cli.Exit("", exitUploadFails)
	}
	return nil
}
