package main

import (
	"context"
	"fmt"

	"tlstory/internal/seed"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Out string `short:"o" help:"Output file (defaults to JSON_OUTPUT)"`
}

func (c *GenerateCmd) Run(ctx context.Context, a *app) error {
	out := c.Out
	if out == "" {
		out = a.cfg.JSONOutput
	}

	path, doc, err := a.document.Publish(ctx, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s (%d events, %d eras)\n", path, len(doc.Events), len(doc.Eras))
	return nil
}

// ExportCmd implements the 'export' command.
type ExportCmd struct{}

func (c *ExportCmd) Run(ctx context.Context, a *app) error {
	payload, err := a.document.Export(ctx)
	if err != nil {
		return err
	}
	_, err = a.out.Write(payload)
	return err
}

// SeedCmd implements the 'seed' command.
type SeedCmd struct {
	File    string `arg:"" type:"existingfile" help:"Seed file (YAML or JSON)"`
	Replace bool   `help:"Remove every event and era before loading"`
}

func (c *SeedCmd) Run(ctx context.Context, a *app) error {
	file, err := seed.Load(c.File)
	if err != nil {
		return err
	}

	apply := a.imports.Merge
	if c.Replace {
		apply = a.imports.Replace
	}
	result, err := apply(ctx, file)
	if err != nil {
		return err
	}

	if c.Replace {
		fmt.Fprintf(a.out, "removed %d events, %d eras\n", result.RemovedEvents, result.RemovedEras)
	}
	fmt.Fprintf(a.out, "loaded %d events, %d eras (config updated: %t)\n", result.Events, result.Eras, result.ConfigUpdated)
	return nil
}

// BackupCmd implements the 'backup' command.
type BackupCmd struct{}

func (c *BackupCmd) Run(ctx context.Context, a *app) error {
	path, err := a.backups.Backup(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

// EventsCmd implements the 'events' command.
type EventsCmd struct {
	All bool `short:"a" help:"Include inactive events"`
}

func (c *EventsCmd) Run(ctx context.Context, a *app) error {
	events, err := a.events.ListEvents(ctx, !c.All)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderEvents(events))
	return nil
}

// ErasCmd implements the 'eras' command.
type ErasCmd struct {
	All bool `short:"a" help:"Include inactive eras"`
}

func (c *ErasCmd) Run(ctx context.Context, a *app) error {
	eras, err := a.eras.ListEras(ctx, !c.All)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderEras(eras))
	return nil
}
