/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command getstarted walks the document store end to end: it ensures the
// sample database and container, upserts the canned family items, point-reads
// each one back, and runs a SQL query over the known last names.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/suparena/docstore"
	"github.com/suparena/docstore/family"
)

var (
	manifestFlag = flag.String("manifest", "", "Path to a YAML manifest describing the database and containers")
	debugFlag    = flag.Bool("debug", false, "Enable debug request logging")
	versionFlag  = flag.Bool("version", false, "Show version information")
)

const (
	defaultDatabase   = "FamilySampleDB"
	defaultContainer  = "Families"
	defaultKeyPath    = "/lastName"
	defaultThroughput = 400
	queryPageSize     = 10
)

func main() {
	flag.Parse()

	if *versionFlag {
		info := docstore.GetVersionInfo()
		fmt.Printf("docstore getstarted version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		os.Exit(0)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if !*debugFlag {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := run(context.Background(), log); err != nil {
		log.Error().Err(err).Msg("getting started run failed")
		os.Exit(1)
	}
	log.Info().Msg("demo complete")
}

func run(ctx context.Context, log zerolog.Logger) error {
	cfg, err := docstore.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load account settings: %w", err)
	}
	cfg.Logger = &log
	log.Info().Str("region", cfg.Region).Str("endpoint", cfg.Endpoint).Msg("starting sync main")

	client, err := docstore.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer func() {
		log.Info().Msg("closing the client")
		_ = client.Close()
	}()

	manifest := defaultManifest()
	if *manifestFlag != "" {
		manifest, err = docstore.LoadManifest(*manifestFlag)
		if err != nil {
			return err
		}
	}

	log.Info().Str("database", manifest.Database).Msg("ensure database if not exists")
	db, err := client.EnsureDatabase(ctx, manifest.Database)
	if err != nil {
		return err
	}

	var container *docstore.Container
	for i, spec := range manifest.Containers {
		log.Info().Str("container", spec.Name).Msg("ensure container if not exists")
		c, err := db.EnsureContainer(ctx, spec.Name, spec.PartitionKeyPath, spec.ThroughputUnits)
		if err != nil {
			return err
		}
		if i == 0 {
			container = c
		}
	}

	families := family.All()
	if err := createFamilies(ctx, log, container, families); err != nil {
		return err
	}

	log.Info().Msg("reading items")
	readFamilies(ctx, log, container, families)

	log.Info().Msg("querying items")
	return queryFamilies(ctx, log, container)
}

func defaultManifest() *docstore.Manifest {
	return &docstore.Manifest{
		Database: defaultDatabase,
		Containers: []docstore.ContainerSpec{
			{
				Name:             defaultContainer,
				PartitionKeyPath: defaultKeyPath,
				ThroughputUnits:  defaultThroughput,
			},
		},
	}
}

func createFamilies(ctx context.Context, log zerolog.Logger, container *docstore.Container, families []family.Family) error {
	var totalCharge float64
	for _, f := range families {
		res, err := container.UpsertItem(ctx, f, f.LastName)
		if err != nil {
			return fmt.Errorf("upsert family %q: %w", f.ID, err)
		}
		totalCharge += res.Charge
		log.Info().
			Str("id", f.ID).
			Float64("charge", res.Charge).
			Dur("latency", res.Latency).
			Msg("created item")
	}
	log.Info().
		Int("items", len(families)).
		Float64("total_charge", totalCharge).
		Msg("created all items")
	return nil
}

// readFamilies reads each family back by (id, partition key). A single
// missing or failed item is logged and does not abort the remaining reads.
func readFamilies(ctx context.Context, log zerolog.Logger, container *docstore.Container, families []family.Family) {
	keys := make([]docstore.ItemKey, 0, len(families))
	for _, f := range families {
		keys = append(keys, docstore.ItemKey{ID: f.ID, PartitionKey: f.LastName})
	}

	report := container.ReadEach(ctx, keys)
	for _, r := range report.Results {
		if !r.OK() {
			log.Warn().Err(r.Err).Str("id", r.Key.ID).Msg("read item failed")
			continue
		}
		log.Info().
			Str("id", r.Key.ID).
			Float64("charge", r.Charge).
			Dur("latency", r.Latency).
			Msg("item read")
	}
	log.Info().
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Float64("total_charge", report.TotalCharge).
		Msg("batch read complete")
}

func queryFamilies(ctx context.Context, log zerolog.Logger, container *docstore.Container) error {
	statement, err := container.Select().
		WhereIn("lastName", "Andersen", "Wakefield", "Johnson").
		Statement()
	if err != nil {
		return err
	}

	pages := container.QueryItems(statement, queryPageSize)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("query families: %w", err)
		}
		log.Info().
			Int("page", page.Number).
			Int("items", len(page.Items)).
			Float64("charge", page.Charge).
			Strs("ids", page.IDs()).
			Msg("got a page of query results")
	}
	return nil
}
