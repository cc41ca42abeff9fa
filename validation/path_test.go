package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/stretchr/testify/assert"
)

type fakeProber struct {
	exists bool
	err    error
	calls  []string
}

func (p *fakeProber) CheckPathExists(ctx context.Context, path string) (bool, error) {
	p.calls = append(p.calls, path)
	return p.exists, p.err
}

func newEngine(host HostFamily, prober *fakeProber) *Engine {
	return &Engine{Host: host, Prober: prober, Logger: logger.NewDiscardLogger()}
}

func TestValidatePathRequired(t *testing.T) {
	for _, host := range []HostFamily{HostUnix, HostWindows} {
		engine := newEngine(host, &fakeProber{exists: true})

		assert.Equal(t, Invalid(ReasonPathRequired), engine.ValidatePath(context.Background(), "", PathOptions{Required: true}))
		assert.Equal(t, Invalid(ReasonPathRequired), engine.ValidatePath(context.Background(), "   ", PathOptions{Required: true}))
		assert.Equal(t, Valid(), engine.ValidatePath(context.Background(), "", PathOptions{}))
	}
}

func TestValidatePathBlankSkipsProbe(t *testing.T) {
	prober := &fakeProber{exists: false}
	engine := newEngine(HostUnix, prober)

	outcome := engine.ValidatePath(context.Background(), "  ", PathOptions{MustExist: true})

	assert.True(t, outcome.Valid)
	assert.Empty(t, prober.calls)
}

func TestValidatePathUnix(t *testing.T) {
	engine := newEngine(HostUnix, &fakeProber{exists: true})

	assert.Equal(t, Valid(), engine.ValidatePath(context.Background(), "/usr/local/bin/tool", PathOptions{}))
	assert.Equal(t, Invalid(ReasonInvalidUnixPath), engine.ValidatePath(context.Background(), "usr/local/bin", PathOptions{}))
	assert.Equal(t, Invalid(ReasonInvalidUnixPath), engine.ValidatePath(context.Background(), "C:\\Android\\sdk", PathOptions{}))
}

func TestValidatePathWindows(t *testing.T) {
	engine := newEngine(HostWindows, &fakeProber{exists: true})

	tests := []struct {
		value    string
		expected Outcome
	}{
		{`C:\Android\sdk`, Valid()},
		{`c:/Android/sdk`, Valid()},
		{`\\buildserver\share\sdk`, Valid()},
		{`D:relative`, Invalid(ReasonInvalidWindowsPath)},
		{`/usr/local/bin`, Invalid(ReasonInvalidWindowsPath)},
		{`C:\dir\con.txt`, Invalid(ReasonReservedWindowsName)},
		{`C:\dir\COM1`, Invalid(ReasonReservedWindowsName)},
		{`C:/dir/lpt9.log.old`, Invalid(ReasonReservedWindowsName)},
		{`C:\dir\console.txt`, Valid()},
		{`C:\dir\com10`, Valid()},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.ValidatePath(context.Background(), tt.value, PathOptions{}))
		})
	}
}

func TestValidatePathTraversalOnEveryHost(t *testing.T) {
	for _, host := range []HostFamily{HostUnix, HostWindows} {
		engine := newEngine(host, &fakeProber{exists: true})

		assert.Equal(t, Invalid(ReasonPathTraversal), engine.ValidatePath(context.Background(), "/a/../b", PathOptions{}), host.String())
		assert.Equal(t, Invalid(ReasonPathTraversal), engine.ValidatePath(context.Background(), `C:\a\..\b`, PathOptions{}), host.String())
	}
}

func TestValidatePathDangerousCharsOnEveryHost(t *testing.T) {
	values := []string{
		"/opt/sdk;rm -rf /",
		"/opt/`whoami`",
		"/opt/$HOME",
		"/opt/a|b",
		"/opt/a&b",
		"/opt/a>b",
		"/opt/a<b",
		"/opt/it's",
		`/opt/"quoted"`,
		`C:\sdk;calc.exe`,
	}

	for _, host := range []HostFamily{HostUnix, HostWindows} {
		engine := newEngine(host, &fakeProber{exists: true})
		for _, value := range values {
			assert.Equal(t, Invalid(ReasonPathDangerousChars), engine.ValidatePath(context.Background(), value, PathOptions{}), value)
		}
	}
}

func TestValidatePathRuleOrder(t *testing.T) {
	engine := newEngine(HostWindows, &fakeProber{exists: true})

	// dangerous characters are reported before traversal
	assert.Equal(t, Invalid(ReasonPathDangerousChars), engine.ValidatePath(context.Background(), "../a;b", PathOptions{}))
	// extension is checked before the host shape
	assert.Equal(t, Invalid(ReasonInvalidExtension), engine.ValidatePath(context.Background(), "relative.sh", PathOptions{AllowedExtensions: []string{"exe"}}))
}

func TestValidatePathAllowedExtensions(t *testing.T) {
	engine := newEngine(HostWindows, &fakeProber{exists: true})
	opts := PathOptions{AllowedExtensions: []string{"exe", "bat", "cmd"}}

	assert.Equal(t, Valid(), engine.ValidatePath(context.Background(), `C:\tools\emulator.EXE`, opts))
	assert.Equal(t, Valid(), engine.ValidatePath(context.Background(), `C:\tools\run.cmd`, opts))
	assert.Equal(t, Invalid(ReasonInvalidExtension), engine.ValidatePath(context.Background(), `C:\tools\emulator`, opts))
	assert.Equal(t, Invalid(ReasonInvalidExtension), engine.ValidatePath(context.Background(), `C:\tools\emulator.sh`, opts))
	assert.Equal(t, Invalid(ReasonInvalidExtension), engine.ValidatePath(context.Background(), `C:\tools\emulator.`, opts))
}

func TestValidatePathMustExist(t *testing.T) {
	prober := &fakeProber{exists: true}
	engine := newEngine(HostUnix, prober)

	assert.Equal(t, Valid(), engine.ValidatePath(context.Background(), "/opt/android", PathOptions{MustExist: true}))
	assert.Equal(t, []string{"/opt/android"}, prober.calls)

	prober.exists = false
	assert.Equal(t, Invalid(ReasonPathNotExists), engine.ValidatePath(context.Background(), "/opt/android", PathOptions{MustExist: true}))
}

func TestValidatePathProbeFailureIsNotExisting(t *testing.T) {
	prober := &fakeProber{exists: true, err: errors.New("permission denied")}
	engine := newEngine(HostUnix, prober)

	outcome := engine.ValidatePath(context.Background(), "/opt/android", PathOptions{MustExist: true})

	assert.Equal(t, Invalid(ReasonPathNotExists), outcome)
	assert.Len(t, prober.calls, 1)
}

func TestValidatePathSkipsProbeOnShapeFailure(t *testing.T) {
	prober := &fakeProber{exists: true}
	engine := newEngine(HostUnix, prober)

	engine.ValidatePath(context.Background(), "relative/path", PathOptions{MustExist: true})

	assert.Empty(t, prober.calls)
}

func TestValidateXcodePath(t *testing.T) {
	prober := &fakeProber{exists: true}
	engine := newEngine(HostUnix, prober)

	assert.Equal(t, Valid(), engine.ValidateXcodePath(context.Background(), "/Applications/Xcode.app"))
	assert.Equal(t, Valid(), engine.ValidateXcodePath(context.Background(), "/Applications/Xcode-beta"))
	assert.Equal(t, Valid(), engine.ValidateXcodePath(context.Background(), "/opt/Developer.app"))
	assert.Equal(t, Invalid(ReasonInvalidXcodePath), engine.ValidateXcodePath(context.Background(), "/Applications/Tools"))
	assert.Equal(t, Valid(), engine.ValidateXcodePath(context.Background(), ""))

	prober.exists = false
	assert.Equal(t, Invalid(ReasonPathNotExists), engine.ValidateXcodePath(context.Background(), "/Applications/Xcode.app"))
}

func TestValidateExecutablePath(t *testing.T) {
	windows := newEngine(HostWindows, &fakeProber{exists: true})
	assert.Equal(t, Valid(), windows.ValidateExecutablePath(context.Background(), `C:\Huawei\hdc.exe`))
	assert.Equal(t, Invalid(ReasonInvalidExtension), windows.ValidateExecutablePath(context.Background(), `C:\Huawei\hdc`))

	unix := newEngine(HostUnix, &fakeProber{exists: true})
	assert.Equal(t, Valid(), unix.ValidateExecutablePath(context.Background(), "/opt/huawei/hdc"))
}

func TestValidateDirectories(t *testing.T) {
	prober := &fakeProber{exists: false}
	engine := newEngine(HostUnix, prober)

	assert.Equal(t, Invalid(ReasonPathNotExists), engine.ValidateAndroidSdkPath(context.Background(), "/opt/android"))
	assert.Equal(t, Invalid(ReasonPathNotExists), engine.ValidateDevecoPath(context.Background(), "/opt/deveco"))
	assert.Equal(t, Invalid(ReasonPathNotExists), engine.ValidateScreenshotDir(context.Background(), "/home/me/shots"))
	assert.Equal(t, Valid(), engine.ValidateDirectory(context.Background(), ""))
}

func TestOptionValidator(t *testing.T) {
	language := OptionValidator(models.Settings{}, "Language")
	theme := OptionValidator(models.Settings{}, "Theme")
	defaults := models.DefaultSettings()

	assert.Equal(t, Valid(), language(context.Background(), defaults.Language))
	assert.Equal(t, Valid(), theme(context.Background(), defaults.Theme))
	assert.Equal(t, Invalid(ReasonInvalidOption), language(context.Background(), "fr-FR"))
	assert.Equal(t, Invalid(ReasonInvalidOption), theme(context.Background(), "neon"))
	assert.Equal(t, Valid(), language(context.Background(), ""))

	untagged := OptionValidator(models.Settings{}, "AndroidHome")
	assert.Equal(t, Valid(), untagged(context.Background(), "anything"))
}

func TestHostFamily(t *testing.T) {
	assert.Equal(t, HostWindows, hostFamily("windows"))
	assert.Equal(t, HostUnix, hostFamily("darwin"))
	assert.Equal(t, HostUnix, hostFamily("linux"))
}
