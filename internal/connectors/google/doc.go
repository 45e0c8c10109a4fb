// Package google provides the shared plumbing for the Google API
// adapters: service-account token sources, service constructors, API
// error translation and rate limiting. The Drive and Sheets adapters
// live in subpackages.
package google
