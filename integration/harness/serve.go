package harness

import (
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"testing"
	"time"
)

// FreePort asks the kernel for an unused TCP port on localhost.
func FreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	_ = l.Close()
	return port
}

// StartServer launches the CLI's serve command and waits until /health
// answers. The process is killed when the test finishes.
func StartServer(t *testing.T, binPath, workDir string, args []string, env map[string]string) string {
	t.Helper()

	cmd := exec.Command(binPath, args...)
	cmd.Dir = workDir
	if len(env) > 0 {
		cmd.Env = mergeEnv(env)
	}
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	base := serverBaseURL(args)
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(base + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return base
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server at %s did not become healthy", base)
	return ""
}

func serverBaseURL(args []string) string {
	for i, arg := range args {
		if arg == "-listen" && i+1 < len(args) {
			return fmt.Sprintf("http://%s", args[i+1])
		}
	}
	return "http://127.0.0.1:8080"
}
