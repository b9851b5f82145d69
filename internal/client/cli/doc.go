// Package cli provides the interactive jobdeck command-line client.
//
// It wires configuration, local storage, the session store, the route
// guard, the request gateway, and an interactive REPL whose commands map
// to the routes of the job-search service. Typical flow: resolve the
// persisted session, land on the jobs listing or the login prompt, and
// execute user commands.
//
// Key features:
//   - Register / Login / Logout with a locally persisted sealed session
//   - Job search, swipe-style save, and one-shot apply
//   - Profile editing and CV upload
//   - Education and experience entries with optimistic create/edit/delete
//   - Offline fallback to the last fetched collection snapshots
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Root, and dispatch for details.
package cli
