// Package routing implements the turn-taking audio-routing controller of a
// bidirectional voice-translation pipeline.
//
// One [Controller] owns one session. It serializes control events
// (push-to-talk, voice activity) and audio frames through a single-worker
// event loop, maintains the current [Turn] via a total transition table, and
// produces a [RoutingDecision] per frame that the configured [Dispatcher]
// delivers to downstream transcription/translation/synthesis collaborators.
//
// The core never decodes audio, calls a model, or renders UI; those are
// collaborator concerns behind the [Dispatcher] boundary.
package routing
