package main

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/store"
)

func runSeed(ctx context.Context, reset bool) error {
	files, err := store.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	if err := files.Seed(ctx, reset); err != nil {
		return err
	}
	log.Info("catalog seeded",
		zap.String("path", filepath.Join(cfg.DataDir, store.GroupsFile)),
		zap.Bool("reset", reset),
	)
	return nil
}
