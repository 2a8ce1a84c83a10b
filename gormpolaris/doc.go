// Package gormpolaris provides a GORM dialector that executes Druid SQL
// against the Polaris query API.
//
// Limitations:
//   - Read-only: INSERT/UPDATE/DELETE/DDL are not supported. Ingest rows
//     through the client's push API instead.
//   - Migrations are not supported; tables are managed through the Tables API.
//   - A query that returns no rows carries no schema, so scanning into structs
//     only works for non-empty result sets.
package gormpolaris
