// Package events defines the typed event contract of the routing core.
//
// Event kinds are grouped by producer-facing namespaces:
//
//   - control.*
//   - input.*
//   - turn_state.*
//
// control events are external signals that change turn ownership:
//
//   - ManualPressed (control.manual_pressed): push-to-talk engaged; always
//     wins over automatic detection.
//   - ManualReleased (control.manual_released): push-to-talk released;
//     arms automatic listening.
//   - VoiceStarted (control.voice_started): voice activity confirmed by the
//     detector.
//   - VoiceStopped (control.voice_stopped): voice activity ended.
//
// input events carry audio payloads:
//
//   - AudioFrame (input.audio_frame): one opaque audio frame with implicit
//     arrival order.
//
// turn_state events are emitted by the controller towards observers:
//
//   - TurnOpened (turn_state.opened): a new turn took ownership of the
//     channel.
//   - TurnClosed (turn_state.closed): a turn finished and its artifacts were
//     flushed.
//   - TurnPreempted (turn_state.preempted): an automatic turn was forcibly
//     closed by a manual press before it ended on its own.
package events
