package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mentra/group-booking/internal/flow"
)

func runHandoff(ctx context.Context, groupID string, now time.Time) error {
	server := handoffServer
	if server == "" {
		server = fmt.Sprintf("http://localhost:%s/api", cfg.ServerPort)
	}
	client := flow.NewClient(server, flow.WithToken(handoffToken))

	h, err := client.Handoff(ctx, groupID)
	if err != nil {
		return err
	}

	var data []byte
	ext := handoffFormat
	switch handoffFormat {
	case "json":
		if data, err = flow.HandoffJSON(h); err != nil {
			return err
		}
	case "text":
		ext = "txt"
		data = []byte(flow.HandoffText(h, now))
	default:
		return fmt.Errorf("unknown format %q (want text or json)", handoffFormat)
	}

	path := filepath.Join(handoffOut, flow.ExportFileName(groupID, now, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Info("handoff saved", zap.String("path", path))
	return nil
}
