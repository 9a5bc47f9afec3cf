// Package giterror classifies errors returned by GitHub API calls.
// REST responses are classified structurally by the client from status
// codes and headers; this package covers the remaining surface, where
// errors arrive as opaque strings (the GraphQL library) or as transport
// faults, and decides whether a failed request is worth retrying.
package giterror
