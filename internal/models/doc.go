// Package models defines the entities that flow through a bpmx run.
//
//   - [Track] : a playlist entry, created by the collector, given a BPM once by a resolver, then sorted and formatted
//   - [Candidate] : a transient search hit from the tempo database, only used while matching
//
// A track's BPM is always set after resolution, defaulting to [UnknownBPM].
// Nothing here is persisted; state lives for the duration of one invocation.
package models
