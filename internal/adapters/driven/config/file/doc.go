// Package file reads tweetwatch settings from a TOML file.
//
// Nested tables are flattened to dot-notation keys, so
//
//	[twitter]
//	term = "Acme"
//
// is read back as "twitter.term". A missing file is not an error: every
// setting can also come from the environment.
package file
