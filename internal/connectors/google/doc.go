// Package google provides shared infrastructure for Google API sinks.
//
// It contains:
//   - Service-account token sources built from a credentials JSON file
//   - Service factories for Google API clients
//   - Error helpers for common Google API errors (401, 403, 404, 429)
//   - Write pacing to stay under per-user API quotas
//
// # Usage
//
//	ts, err := google.ServiceAccountTokenSource(ctx, "client_secret.json", sheets.SpreadsheetsScope)
//	svc, err := google.NewSheetsService(ctx, option.WithTokenSource(ts))
//
// # Credentials
//
// The credentials file is a service-account key downloaded from the Google
// Cloud console. The spreadsheet must be shared with the service account's
// client_email for appends to succeed.
package google
