// Package config provides configuration structures and utilities for
// PhantomScan. It defines the main options for auditing documents,
// breach checking, archival, and report generation preferences.
package config
