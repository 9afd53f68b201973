package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/accountkeeper/internal/iocli"
	"github.com/iudanet/accountkeeper/internal/storage"
)

const (
	testPassword  = "Valid$Pass1234"
	otherPassword = "Other#Pass5678"
)

// terminal - сценарий ввода и захваченный вывод одного запуска
type terminal struct {
	mock      *iocli.IOMock
	out       *strings.Builder
	inputs    []string
	passwords []string
	confirms  []bool
}

func newTerminal(inputs, passwords []string, confirms ...bool) *terminal {
	term := &terminal{
		out:       &strings.Builder{},
		inputs:    inputs,
		passwords: passwords,
		confirms:  confirms,
	}

	term.mock = &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			_, _ = fmt.Fprintln(term.out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			_, _ = fmt.Fprintf(term.out, format, a...)
		},
		ReadInputFunc: func(prompt string) (string, error) {
			if len(term.inputs) == 0 {
				return "", io.EOF
			}
			v := term.inputs[0]
			term.inputs = term.inputs[1:]
			return v, nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			if len(term.passwords) == 0 {
				return "", io.EOF
			}
			v := term.passwords[0]
			term.passwords = term.passwords[1:]
			return v, nil
		},
		ConfirmFunc: func(prompt string) (bool, error) {
			if len(term.confirms) == 0 {
				return false, io.EOF
			}
			v := term.confirms[0]
			term.confirms = term.confirms[1:]
			return v, nil
		},
	}

	return term
}

// isolateHome направляет XDG config/data home во временный каталог
func isolateHome(t *testing.T) string {
	t.Helper()

	t.Cleanup(xdg.Reload)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "share"))
	xdg.Reload()

	return home
}

// setupDB изолирует конфиг пользователя и возвращает путь к базе
func setupDB(t *testing.T, name string) string {
	t.Helper()

	isolateHome(t)

	return filepath.Join(t.TempDir(), "data", name)
}

func execute(t *testing.T, term *terminal, args ...string) error {
	t.Helper()

	c := New(term.mock, BuildInfo{Version: "1.2.3", BuildDate: "2026-01-02", GitCommit: "abc123"})
	c.logOut = io.Discard

	return c.Execute(context.Background(), args)
}

func run(t *testing.T, term *terminal, dbPath string, args ...string) error {
	t.Helper()

	return execute(t, term, append([]string{"--db", dbPath}, args...)...)
}

func createAccount(t *testing.T, dbPath, name, password string) {
	t.Helper()

	term := newTerminal([]string{name + "@example.com", name, "y"}, []string{password})
	require.NoError(t, run(t, term, dbPath, "create"))
}

func countAccounts(t *testing.T, dbPath string) string {
	t.Helper()

	term := newTerminal(nil, nil)
	require.NoError(t, run(t, term, dbPath, "count"))
	return strings.TrimSpace(term.out.String())
}

func TestVersion(t *testing.T) {
	dbPath := setupDB(t, "database.sqlite3")

	term := newTerminal(nil, nil)
	require.NoError(t, run(t, term, dbPath, "version"))

	out := term.out.String()
	assert.Contains(t, out, "Version:    1.2.3")
	assert.Contains(t, out, "Build Date: 2026-01-02")
	assert.Contains(t, out, "Git Commit: abc123")

	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "version не открывает базу")
}

func TestInit(t *testing.T) {
	dbPath := setupDB(t, "database.sqlite3")

	term := newTerminal(nil, nil)
	require.NoError(t, run(t, term, dbPath, "init"))

	assert.Contains(t, term.out.String(), "Database ready: "+dbPath)
	assert.Contains(t, term.out.String(), "User count: 0")

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	// повторный init безопасен
	require.NoError(t, run(t, newTerminal(nil, nil), dbPath, "init"))
}

func TestInit_DefaultPathInDataHome(t *testing.T) {
	home := isolateHome(t)

	term := newTerminal(nil, nil)
	require.NoError(t, execute(t, term, "init"))

	want := filepath.Join(home, "share", "accountkeeper", "database.sqlite3")
	assert.Contains(t, term.out.String(), "Database ready: "+want)
	assert.FileExists(t, want)
	assert.NoDirExists(t, filepath.Join(home, "config", "accountkeeper"))
}

func TestDriverAndConfigErrors(t *testing.T) {
	dbPath := setupDB(t, "database.sqlite3")

	err := run(t, newTerminal(nil, nil), dbPath, "--driver", "postgres", "count")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	err = run(t, newTerminal(nil, nil), dbPath, "--log-level", "loud", "count")
	require.Error(t, err)

	err = run(t, newTerminal(nil, nil), dbPath, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "count")
	require.Error(t, err)
}

func TestStorageUnavailable(t *testing.T) {
	setupDB(t, "unused")

	// родитель - обычный файл, каталог создать нельзя
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := run(t, newTerminal(nil, nil), filepath.Join(blocker, "db.sqlite3"), "count")
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
}

func TestBoltDriver(t *testing.T) {
	dbPath := setupDB(t, "database.bolt")

	term := newTerminal([]string{"bolt@example.com", "boltuser", "y"}, []string{testPassword})
	require.NoError(t, run(t, term, dbPath, "--driver", "bolt", "create"))

	term = newTerminal(nil, []string{testPassword})
	require.NoError(t, run(t, term, dbPath, "--driver", "bolt", "login", "boltuser"))

	term = newTerminal(nil, nil)
	require.NoError(t, run(t, term, dbPath, "--driver", "bolt", "count"))
	assert.Equal(t, "1", strings.TrimSpace(term.out.String()))
}
