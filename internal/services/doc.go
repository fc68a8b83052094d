// Package services defines the collaborator interfaces bpmx resolves tempos through and implements them for Spotify and GetSongBPM.
//
// # Interfaces
//
//   - [Catalog] pages through a playlist's tracks.
//   - [FeatureSource] looks up tempos in batches of up to [MaxFeatureBatch] track IDs.
//   - [TempoDatabase] searches an independent song database by title and fetches a song's tempo by ID.
//
// # Spotify Implementation
//
// [SpotifyService] wraps github.com/zmb3/spotify/v2 and authenticates with the client-credentials flow
// (golang.org/x/oauth2/clientcredentials). Tokens are fetched lazily on the first request and refreshed by the transport.
//
// # GetSongBPM Implementation
//
// [SongBPMService] is a plain JSON-over-HTTP client. Requests are paced by a golang.org/x/time/rate limiter
// when requests_per_second is set. A search with no hits is reported as an empty candidate list, not an error.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : credentials rejected, or 401/403 from the API
//   - [shared.ErrPlaylistNotFound] : 404 from the catalog
//   - [shared.ErrAPIRequest] : transport failure or any other non-success status
//   - [shared.ErrMalformedResponse] : body could not be decoded or lacks required keys
//   - [shared.ErrTrackNotFound] : song detail has no tempo
package services
