// Package cli provides the interactive siniestros console.
//
// It wires configuration, local session state, API services, and an
// interactive command loop gated by the current role's capabilities.
// Typical flow: restore a persisted session on startup, prompt for
// credentials when there is none, and execute user commands.
//
// Key features:
//   - Login / Logout with persisted sessions
//   - Record and edit incidents with losses and involved parties
//   - Photo evidence upload and bulletin generation
//   - Incident listing, search, statistics, and user administration
//
// The loop is started via App.Root(ctx), which blocks until the user exits.
package cli
