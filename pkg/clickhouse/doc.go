// Package clickhouse seeds a catalog from a live ClickHouse server.
//
// The client reads system.columns for the configured databases and adds one
// catalog table per ClickHouse table, mapping column types onto the type
// registry. Integer types (Int8 through UInt256) map to integer and Bool maps
// to boolean; Nullable and LowCardinality wrappers are ignored. Types the
// registry can't express are skipped and reported back to the caller.
//
// Example usage:
//
//	client, err := clickhouse.NewClient(ctx, "localhost:9000")
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	cat := catalog.New()
//	skipped, err := client.LoadCatalog(ctx, cat, types.Prelude(), "default")
//	if err != nil {
//		return err
//	}
//
//	for _, col := range skipped {
//		fmt.Printf("unsupported column: %s\n", col)
//	}
package clickhouse
