// Package tableio reads tables from CSV, XLSX and Parquet files, optionally
// compressed with gzip, zstd or lz4, and writes report workbooks as XLSX,
// zipped CSV or Parquet.
package tableio
