package notify

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

// Audio parameters for the synthesized chime.
const (
	chimeSampleRate = 44100
	chimeChannels   = 1
)

// Compile-time interface check.
var _ domain.Notifier = (*ChimeNotifier)(nil)

// ChimeNotifier plays a short synthesized two-tone chime. Playback is
// skipped entirely when the alert's sound flag is off.
type ChimeNotifier struct {
	ctx *oto.Context
	log *logger.Logger
	pcm []byte

	mu     sync.Mutex
	active *oto.Player
}

// NewChimeNotifier initializes the system audio context and renders
// the chime PCM once. Callers treat an error as "no audio device" and
// skip this notifier at wiring time.
func NewChimeNotifier(log *logger.Logger) (*ChimeNotifier, error) {
	op := &oto.NewContextOptions{
		SampleRate:   chimeSampleRate,
		ChannelCount: chimeChannels,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-readyChan

	log.Debug("notify: audio context ready (rate=%d)", chimeSampleRate)
	return &ChimeNotifier{ctx: ctx, log: log, pcm: renderChime()}, nil
}

// Notify plays the chime when playSound is set. Blocks until playback
// finishes (the chime is well under a second).
func (n *ChimeNotifier) Notify(ctx context.Context, title, body string, playSound bool) error {
	if !playSound {
		return nil
	}

	player := n.ctx.NewPlayer(bytes.NewReader(n.pcm))

	n.mu.Lock()
	n.active = player
	n.mu.Unlock()

	player.Play()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}

	n.mu.Lock()
	n.active = nil
	n.mu.Unlock()

	return player.Close()
}

// Stop interrupts a playing chime, if any.
func (n *ChimeNotifier) Stop() {
	n.mu.Lock()
	active := n.active
	n.mu.Unlock()
	if active != nil {
		active.Pause()
	}
}

// renderChime synthesizes the alert sound: two rising sine tones with
// a linear fade-out, 16-bit little-endian PCM.
func renderChime() []byte {
	type tone struct {
		freq float64
		dur  time.Duration
	}
	tones := []tone{
		{freq: 880, dur: 150 * time.Millisecond},
		{freq: 1174.66, dur: 250 * time.Millisecond},
	}

	var buf bytes.Buffer
	for _, t := range tones {
		samples := int(float64(chimeSampleRate) * t.dur.Seconds())
		for i := 0; i < samples; i++ {
			fade := 1.0 - float64(i)/float64(samples)
			v := math.Sin(2*math.Pi*t.freq*float64(i)/chimeSampleRate) * fade * 0.4
			sample := int16(v * math.MaxInt16)
			binary.Write(&buf, binary.LittleEndian, sample)
		}
	}
	return buf.Bytes()
}
