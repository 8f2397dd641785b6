/*
Package docstore presents a Cosmos-style document-store surface on top of
Amazon DynamoDB: a client opens logical databases, databases hold containers
keyed by a partition key path, and containers hold id-addressed items.

Databases are logical namespaces rendered as table-name prefixes; containers
map one-to-one onto DynamoDB tables keyed (partition key, id). Every item
operation reports the request charge the service billed and the observed
latency alongside its result.

Key Features:
  - Idempotent ensure of databases and containers
  - Upsert and create-only writes with conflict detection
  - Point reads by (id, partition key value)
  - Lazy pull-based pagination of SQL query results
  - Per-item batch read reports instead of fail-fast batches
  - Semantic error types for better error handling

Basic Usage:

	cfg, _ := docstore.ConfigFromEnv()
	client, _ := docstore.New(ctx, cfg)
	defer client.Close()

	db, _ := client.EnsureDatabase(ctx, "FamilySampleDB")
	families, _ := db.EnsureContainer(ctx, "Families", "/lastName", 400)

	item := family.Andersen()
	res, _ := families.UpsertItem(ctx, item, item.LastName)
	log.Printf("charge=%.2f latency=%s", res.Charge, res.Latency)

	var got family.Family
	_, err := families.ReadItem(ctx, item.ID, item.LastName, &got)

For more information, see the documentation at https://github.com/suparena/docstore
*/
package docstore
