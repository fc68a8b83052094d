// Package tasks runs the playlist tempo pipeline with progress reporting.
//
// # Pipeline
//
// [Engine.Run] executes these steps in order, one request at a time:
//
//  1. Extract the playlist ID from a link, URI or bare ID ([shared.ExtractPlaylistID])
//  2. Collect every track across all pages ([CollectTracks])
//  3. Attach a BPM to each track ([TempoResolver])
//  4. Sort ascending by BPM with unknown tempos last ([SortByBPM])
//
// # Resolvers
//
// [FeatureResolver] batches catalog IDs, at most [services.MaxFeatureBatch] per request, through a
// [services.FeatureSource]. A failed batch aborts the run.
//
// [SearchResolver] searches a [services.TempoDatabase] by title and picks a candidate with [MatchCandidate]:
// exact artist, then partial artist, then the first hit when its title matches. Every failure for a track is
// recorded as [models.UnknownBPM] and the run carries on.
//
// # Progress Reporting
//
// Updates are delivered synchronously to a [ProgressFunc], in order, and are never dropped.
// The [ProgressUpdate] struct contains phase, step counters, a message, and optional data.
package tasks
