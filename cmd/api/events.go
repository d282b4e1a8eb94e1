package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mentra/group-booking/internal/events"
)

func runEvents(ctx context.Context, out io.Writer, groupID string, limit int) error {
	if cfg.NATSURL == "" {
		return errors.New("NATS_URL is not set")
	}

	client, err := events.Connect(ctx, events.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		return err
	}
	defer client.Close()

	list, err := events.Recent(ctx, client.JetStream(), groupID, limit)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "no events for %s\n", groupID)
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(out, "%s  %-18s  %s  %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.GroupID, e.ID)
	}
	return nil
}
