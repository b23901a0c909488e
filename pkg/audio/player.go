// Package audio plays focusbox cues through an external player binary.
package audio

import (
	"log/slog"
	"os/exec"
	"sync"
	"syscall"
)

// Player shells out to an mpg123-style command for playback. Cue ids
// are file paths. All calls are fire-and-forget: playback problems are
// logged, never returned, so the state machine cannot stall on audio.
type Player struct {
	command string
	logger  *slog.Logger

	mu      sync.Mutex
	loopCmd *exec.Cmd
	loopCue string
}

// NewPlayer creates a player using the given command (e.g. "mpg123").
func NewPlayer(command string) *Player {
	return &Player{
		command: command,
		logger:  slog.Default().With("component", "audio"),
	}
}

// PlayLoop starts looping the cue, replacing any loop in progress.
// Restarting the same cue is a no-op.
func (p *Player) PlayLoop(cue string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loopCmd != nil && p.loopCue == cue {
		return
	}
	p.stopLoopLocked()

	cmd := exec.Command(p.command, "-q", "--loop", "-1", cue)
	if err := cmd.Start(); err != nil {
		p.logger.Warn("cannot start loop cue", "cue", cue, "error", err)
		return
	}
	p.loopCmd = cmd
	p.loopCue = cue
	p.logger.Debug("loop cue started", "cue", cue)

	// Reap the process when it exits for any reason
	go func() {
		_ = cmd.Wait()
		p.mu.Lock()
		if p.loopCmd == cmd {
			p.loopCmd = nil
			p.loopCue = ""
		}
		p.mu.Unlock()
	}()
}

// PlayOnce plays the cue a single time.
func (p *Player) PlayOnce(cue string) {
	cmd := exec.Command(p.command, "-q", cue)
	if err := cmd.Start(); err != nil {
		p.logger.Warn("cannot start one-shot cue", "cue", cue, "error", err)
		return
	}
	p.logger.Debug("one-shot cue started", "cue", cue)
	go func() { _ = cmd.Wait() }()
}

// Stop stops the loop cue if one is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLoopLocked()
}

func (p *Player) stopLoopLocked() {
	if p.loopCmd == nil {
		return
	}
	if p.loopCmd.Process != nil {
		if err := p.loopCmd.Process.Signal(syscall.SIGTERM); err != nil {
			_ = p.loopCmd.Process.Kill()
		}
	}
	p.loopCmd = nil
	p.loopCue = ""
}
