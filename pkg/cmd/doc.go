// Package cmd implements the sqlcheck command line interface.
//
// Commands are plain urfave/cli commands registered with fx through the
// "commands" value group; Run assembles them into the root command and runs
// it once the fx application starts.
//
// Available commands:
//
//	sqlcheck check [--url dsn] <path>...    analyze SQL files and report problems
//	sqlcheck catalog [--url dsn] <path>...  print the catalog and queries the files produce
//
// Paths may be files or directories; directories are searched recursively for
// .sql files. The DDL files listed under catalog in sqlcheck.yaml are analyzed
// first, so queries can refer to tables declared there.
package cmd
