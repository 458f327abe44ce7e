// Package xsession locates the X11 session a process should talk to when it
// was started without one, e.g. from an agent or a systemd unit.
package xsession

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	runCommandOutputFn = runCommandOutput
	readFileFn         = os.ReadFile
	readDirFn          = os.ReadDir
	detectSessionFn    = detectLoginSession
	detectSocketFn     = detectDisplayFromSockets
)

const socketDir = "/tmp/.X11-unix"

// Env is the pair of variables Xlib-compatible clients read.
type Env struct {
	Display    string
	XAuthority string
}

// Resolve fills in whatever environ lacks: first from the logind session of
// the current user, then from the highest-numbered X socket, and finally
// ~/.Xauthority. It fails only when no display can be found.
func Resolve(environ []string) (Env, error) {
	e := Env{
		Display:    strings.TrimSpace(envLookup(environ, "DISPLAY")),
		XAuthority: strings.TrimSpace(envLookup(environ, "XAUTHORITY")),
	}

	if e.Display == "" || e.XAuthority == "" {
		display, xauthority := detectSessionFn()
		if e.Display == "" {
			e.Display = strings.TrimSpace(display)
		}
		if e.XAuthority == "" {
			e.XAuthority = strings.TrimSpace(xauthority)
		}
	}
	if e.Display == "" {
		e.Display = detectSocketFn(socketDir)
	}
	if e.Display == "" {
		return Env{}, fmt.Errorf("no X display found; set display in config (e.g. display: \":1\") or export DISPLAY")
	}

	if e.XAuthority == "" {
		home := strings.TrimSpace(envLookup(environ, "HOME"))
		if home == "" {
			if h, err := os.UserHomeDir(); err == nil {
				home = h
			}
		}
		if home != "" {
			candidate := filepath.Join(home, ".Xauthority")
			if _, err := os.Stat(candidate); err == nil {
				e.XAuthority = candidate
			}
		}
	}
	return e, nil
}

// Ensure resolves the session for the current process and exports it.
func Ensure() (Env, error) {
	e, err := Resolve(os.Environ())
	if err != nil {
		return Env{}, err
	}
	if err := os.Setenv("DISPLAY", e.Display); err != nil {
		return Env{}, fmt.Errorf("failed to set DISPLAY: %w", err)
	}
	if e.XAuthority != "" {
		if err := os.Setenv("XAUTHORITY", e.XAuthority); err != nil {
			return Env{}, fmt.Errorf("failed to set XAUTHORITY: %w", err)
		}
	}
	return e, nil
}

func runCommandOutput(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// detectLoginSession asks logind for a graphical session of the current user
// and reads DISPLAY/XAUTHORITY from its leader process.
func detectLoginSession() (display string, xauthority string) {
	uid := strconv.Itoa(os.Getuid())
	out, err := runCommandOutputFn("loginctl", "list-sessions", "--no-legend")
	if err != nil {
		return "", ""
	}
	for _, sessionID := range parseLoginctlSessions(out, uid) {
		d := loginctlSessionProp(sessionID, "Display")
		if d == "" || strings.EqualFold(d, "n/a") {
			continue
		}

		leader := loginctlSessionProp(sessionID, "Leader")
		if leader == "" || leader == "0" {
			return d, ""
		}
		env, err := readProcEnviron(leader)
		if err != nil {
			return d, ""
		}
		if ed := strings.TrimSpace(env["DISPLAY"]); ed != "" {
			d = ed
		}
		return d, strings.TrimSpace(env["XAUTHORITY"])
	}
	return "", ""
}

func parseLoginctlSessions(output string, uid string) []string {
	var sessions []string
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == uid {
			sessions = append(sessions, fields[0])
		}
	}
	return sessions
}

func loginctlSessionProp(sessionID string, prop string) string {
	out, err := runCommandOutputFn("loginctl", "show-session", sessionID, "-p", prop, "--value")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func readProcEnviron(pid string) (map[string]string, error) {
	data, err := readFileFn(filepath.Join("/proc", pid, "environ"))
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, part := range strings.Split(string(data), "\x00") {
		key, value, ok := strings.Cut(part, "=")
		if ok {
			env[key] = value
		}
	}
	return env, nil
}

// detectDisplayFromSockets picks the highest display with a socket in dir.
func detectDisplayFromSockets(dir string) string {
	entries, err := readDirFn(dir)
	if err != nil {
		return ""
	}

	var displays []int
	for _, entry := range entries {
		name := entry.Name()
		if len(name) < 2 || name[0] != 'X' {
			continue
		}
		if n, err := strconv.Atoi(name[1:]); err == nil {
			displays = append(displays, n)
		}
	}
	if len(displays) == 0 {
		return ""
	}
	sort.Ints(displays)
	return fmt.Sprintf(":%d", displays[len(displays)-1])
}

func envLookup(env []string, key string) string {
	prefix := key + "="
	for _, e := range env {
		if strings.HasPrefix(e, prefix) {
			return strings.TrimPrefix(e, prefix)
		}
	}
	return ""
}
