// Travel Journal - Destination Catalog and Recommendation Service
// Copyright 2026 Fiyas N. (Fiyas-N)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fiyas-N/travel-journal-sub000

// Package supervisor builds the suture v4 supervision tree that runs the
// service's long-lived components: the HTTP server in an api layer and
// periodic maintenance in a background layer. Supervisor events are
// logged through sutureslog into the zerolog-backed slog bridge.
package supervisor
