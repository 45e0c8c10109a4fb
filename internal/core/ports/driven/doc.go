// Package driven defines the outbound port interfaces: contracts the
// core requires from external collaborators (the document host and the
// tabular store). Adapters under internal/connectors and
// internal/adapters/driven implement them.
package driven
