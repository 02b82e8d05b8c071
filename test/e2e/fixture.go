// Package e2e drives the movierec binary through a pseudo-terminal against
// an in-process fake backend.
package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/abelbrown/movierec/internal/apitest"
	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
	buildOut  []byte
)

// buildMovierec builds the movierec binary once per test run.
func buildMovierec(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "movierec-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "movierec")

		// test/e2e -> module root
		cmd := exec.Command("go", "build", "-o", binPath, "./cmd/movierec")
		cmd.Dir = filepath.Join("..", "..")
		buildOut, buildErr = cmd.CombinedOutput()
	})
	if buildErr != nil {
		t.Fatalf("build failed: %v\n%s", buildErr, buildOut)
	}
	return binPath
}

// safeBuffer collects console output written from the expect goroutine.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// session is a running movierec process attached to a console.
type session struct {
	t       *testing.T
	console *expect.Console
	cmd     *exec.Cmd
	output  *safeBuffer
	dataDir string
	done    chan error
}

// startSession runs movierec against backend in a fresh data directory.
func startSession(t *testing.T, backend *apitest.Server) *session {
	t.Helper()
	bin := buildMovierec(t)

	homeDir := t.TempDir()
	dataDir := filepath.Join(homeDir, ".movierec")

	out := &safeBuffer{}
	console, err := expect.NewConsole(
		expect.WithStdout(out),
		expect.WithDefaultTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}

	if err := pty.Setsize(console.Tty(), &pty.Winsize{Cols: 100, Rows: 40}); err != nil {
		t.Fatalf("failed to set pty size: %v", err)
	}

	cmd := exec.Command(bin)
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Env = append(os.Environ(),
		"HOME="+homeDir,
		"MOVIEREC_DATA_DIR="+dataDir,
		"MOVIEREC_SERVER_URL="+backend.URL,
		"MOVIEREC_DEBOUNCE=50ms",
		"MOVIEREC_LOG_LEVEL=debug",
		"TERM=xterm-256color",
	)
	if err := cmd.Start(); err != nil {
		console.Close()
		t.Fatalf("failed to start movierec: %v", err)
	}

	s := &session{t: t, console: console, cmd: cmd, output: out, dataDir: dataDir, done: make(chan error, 1)}
	go func() { s.done <- cmd.Wait() }()

	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = console.Close()
		if t.Failed() {
			if logs, err := os.ReadFile(filepath.Join(dataDir, "logs", "movierec.log")); err == nil {
				t.Logf("movierec.log:\n%s", logs)
			}
		}
	})
	return s
}

func (s *session) expect(text string) {
	s.t.Helper()
	if _, err := s.console.ExpectString(text); err != nil {
		s.t.Fatalf("%q not found: %v\nOutput buffer:\n%s", text, err, s.output.String())
	}
}

func (s *session) send(input string) {
	s.t.Helper()
	if _, err := s.console.Send(input); err != nil {
		s.t.Fatalf("failed to send %q: %v", input, err)
	}
}

// click sends an SGR left click at zero-based screen row y.
func (s *session) click(y int) {
	s.t.Helper()
	row := strconv.Itoa(y + 1)
	s.send("\x1b[<0;5;" + row + "M")
	s.send("\x1b[<0;5;" + row + "m")
}

// quit sends ctrl+c and waits for the process to exit.
func (s *session) quit() {
	s.t.Helper()
	s.send("\x03")
	select {
	case <-s.done:
	case <-time.After(3 * time.Second):
		s.t.Error("process did not exit after ctrl+c")
	}
}

