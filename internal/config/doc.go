// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Legacy environment variables
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// Unset fields receive defaults afterwards. The main entry points are
// [GetStructuredConfig] for the server and [GetClientConfig] for the
// command-line API client.
package config
