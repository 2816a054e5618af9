package routing

import (
	"context"
	"sync"

	"github.com/nebulavoice/translate-core/core/audio"
	"github.com/nebulavoice/translate-core/core/events"
	"github.com/nebulavoice/translate-core/core/texttospeech"
	"github.com/nebulavoice/translate-core/core/translation"
)

// Transcriber is the slice of the speech-to-text client the dispatcher
// drives: frame pushes and end-of-turn finalization.
type Transcriber interface {
	SendAudio(audio []byte) error
	StopStream() error
}

// Translator translates one utterance transcript.
type Translator interface {
	Translate(ctx context.Context, text string, opts ...translation.TranslationOption) (string, error)
}

// Synthesizer creates one speech generator per utterance to voice.
type Synthesizer interface {
	NewSpeechGenerator(ctx context.Context, opts ...texttospeech.TextToSpeechOption) (texttospeech.SpeechGenerator, error)
}

// TurnArtifact is the finished product of one turn: the transcript and its
// translation, tagged with the turn it belongs to.
type TurnArtifact struct {
	TurnID      int64
	Speaker     SpeakerTag
	Transcript  string
	Translation string
}

// PipelineDispatcher is the reference [Dispatcher]: transcription frames go
// to the transcriber, metering frames to a level callback, and on flush the
// finalized transcript runs through translation. Turns spoken by the local
// user are additionally synthesized to audio; partner turns are delivered as
// text only.
//
// Artifacts attributed to a preempted turn are discarded at whatever stage
// they have reached.
type PipelineDispatcher struct {
	transcriber Transcriber
	translator  Translator
	synthesizer Synthesizer

	onLevel            func(level float64)
	onArtifact         func(artifact TurnArtifact)
	onSynthesizedAudio func(audio []byte)

	baseContext context.Context

	mu sync.Mutex
	// speakers remembers the speaker tag of every turn that delivered at
	// least one transcription frame and has not produced its artifact yet.
	speakers map[int64]SpeakerTag
	// awaiting orders the flushed turns still waiting for their transcript;
	// the transcriber reports transcripts in flush order.
	awaiting []int64
	// discarded holds preempted turn ids whose late artifacts must be
	// dropped.
	discarded map[int64]struct{}

	audioCh   chan []byte
	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

type PipelineDispatcherOption func(*PipelineDispatcher)

// WithLevelCallback receives the normalized level of every metering frame.
func WithLevelCallback(callback func(level float64)) PipelineDispatcherOption {
	return func(d *PipelineDispatcher) {
		d.onLevel = callback
	}
}

// WithArtifactCallback receives every finished turn artifact.
func WithArtifactCallback(callback func(artifact TurnArtifact)) PipelineDispatcherOption {
	return func(d *PipelineDispatcher) {
		d.onArtifact = callback
	}
}

// WithSynthesizedAudioCallback receives synthesized speech for local turns.
func WithSynthesizedAudioCallback(callback func(audio []byte)) PipelineDispatcherOption {
	return func(d *PipelineDispatcher) {
		d.onSynthesizedAudio = callback
	}
}

func NewPipelineDispatcher(ctx context.Context, transcriber Transcriber, translator Translator, synthesizer Synthesizer, opts ...PipelineDispatcherOption) *PipelineDispatcher {
	d := &PipelineDispatcher{
		transcriber: transcriber,
		translator:  translator,
		synthesizer: synthesizer,

		onLevel:            func(float64) {},
		onArtifact:         func(TurnArtifact) {},
		onSynthesizedAudio: func([]byte) {},

		baseContext: ctx,
		speakers:    map[int64]SpeakerTag{},
		discarded:   map[int64]struct{}{},

		audioCh: make(chan []byte, 64),
		closed:  make(chan struct{}),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	go d.forwardAudio()

	return d
}

// forwardAudio decouples the controller's event loop from the transcriber's
// websocket writes.
func (d *PipelineDispatcher) forwardAudio() {
	defer close(d.done)

	for {
		select {
		case <-d.closed:
			return
		case frame := <-d.audioCh:
			if err := d.transcriber.SendAudio(frame); err != nil {
				logger.Warn("failed to forward frame to transcriber", "error", err)
			}
		}
	}
}

// Deliver implements [Dispatcher].
func (d *PipelineDispatcher) Deliver(decision RoutingDecision, frame events.AudioFrame) {
	switch decision.Action {
	case ActionForwardToTranscription:
		d.mu.Lock()
		d.speakers[decision.TurnID] = decision.Speaker
		d.mu.Unlock()

		select {
		case d.audioCh <- frame.Audio:
		default:
			logger.Debug("transcriber backlog full, dropping frame", "turn_id", decision.TurnID)
		}
		d.onLevel(audio.Level(frame.Audio))
	case ActionForwardToMeteringOnly:
		d.onLevel(audio.Level(frame.Audio))
	}
}

// Flush implements [Dispatcher]. Turns that never delivered a transcription
// frame are released immediately; the transcriber will produce no transcript
// for them.
func (d *PipelineDispatcher) Flush(turnID int64) {
	d.mu.Lock()
	_, sawFrames := d.speakers[turnID]
	if sawFrames {
		d.awaiting = append(d.awaiting, turnID)
	} else {
		delete(d.discarded, turnID)
	}
	d.mu.Unlock()

	if !sawFrames {
		return
	}

	if err := d.transcriber.StopStream(); err != nil {
		logger.Warn("failed to finalize transcriber stream", "error", err, "turn_id", turnID)
	}
}

// Preempt implements the optional preemption hook: everything the turn has
// in flight is discarded instead of delivered.
func (d *PipelineDispatcher) Preempt(turnID int64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.discarded[turnID] = struct{}{}
}

// OnTranscript accepts the finalized transcript of the oldest flushed turn.
// Wire it to the transcriber's transcript callback.
func (d *PipelineDispatcher) OnTranscript(transcript string) {
	d.mu.Lock()
	if len(d.awaiting) == 0 {
		d.mu.Unlock()
		logger.Debug("transcript arrived with no turn awaiting it")
		return
	}
	turnID := d.awaiting[0]
	d.awaiting = d.awaiting[1:]
	speaker := d.speakers[turnID]
	delete(d.speakers, turnID)
	_, dropped := d.discarded[turnID]
	delete(d.discarded, turnID)
	d.mu.Unlock()

	if dropped {
		logger.Debug("discarding transcript of preempted turn", "turn_id", turnID)
		return
	}

	go d.translateAndDeliver(turnID, speaker, transcript)
}

func (d *PipelineDispatcher) translateAndDeliver(turnID int64, speaker SpeakerTag, transcript string) {
	translated, err := d.translator.Translate(d.baseContext, transcript)
	if err != nil {
		logger.Warn("failed to translate transcript", "error", err, "turn_id", turnID)
		return
	}

	if d.isDiscarded(turnID) {
		logger.Debug("discarding translation of preempted turn", "turn_id", turnID)
		return
	}

	d.onArtifact(TurnArtifact{
		TurnID:      turnID,
		Speaker:     speaker,
		Transcript:  transcript,
		Translation: translated,
	})

	if speaker == SpeakerSelf {
		d.synthesize(turnID, translated)
	}
}

func (d *PipelineDispatcher) synthesize(turnID int64, text string) {
	generator, err := d.synthesizer.NewSpeechGenerator(d.baseContext,
		texttospeech.WithSpeechAudioCallback(func(chunk []byte) {
			if d.isDiscarded(turnID) {
				return
			}
			d.onSynthesizedAudio(chunk)
		}),
	)
	if err != nil {
		logger.Warn("failed to open speech generator", "error", err, "turn_id", turnID)
		return
	}

	if err := generator.SendText(text); err != nil {
		logger.Warn("failed to send text to speech generator", "error", err, "turn_id", turnID)
		_ = generator.Close()
		return
	}
	// The mark flushes the buffered text; without it the generator never
	// reports the end of speech and the stream stays open.
	if err := generator.Mark(); err != nil {
		logger.Warn("failed to mark speech generator", "error", err, "turn_id", turnID)
		_ = generator.Close()
		return
	}
	if err := generator.EndOfText(); err != nil {
		logger.Warn("failed to finish speech generator", "error", err, "turn_id", turnID)
		_ = generator.Close()
	}
}

func (d *PipelineDispatcher) isDiscarded(turnID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, dropped := d.discarded[turnID]
	return dropped
}

func (d *PipelineDispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		close(d.closed)
	})

	select {
	case <-d.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
