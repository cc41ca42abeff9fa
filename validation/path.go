// Package validation checks user supplied paths and executable locations
// before they are persisted or handed to the platform tooling.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/logger"
)

type PathKind string

const (
	KindAny       PathKind = "any"
	KindFile      PathKind = "file"
	KindDirectory PathKind = "directory"
)

type PathOptions struct {
	Required  bool
	MustExist bool
	// Kind documents the expected entry, only existence is probed
	Kind              PathKind
	AllowedExtensions []string
}

// Identical on every host, the values end up as subprocess arguments
const dangerousChars = ";&|`$<>'\""

var (
	windowsPathRegex = regexp.MustCompile(`^([a-zA-Z]:[/\\]|\\\\)`)
	reservedNames    = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[1-9]|lpt[1-9])$`)
	pathSeparators   = regexp.MustCompile(`[/\\]`)
)

// Engine evaluates path rules for a host family
type Engine struct {
	Host   HostFamily
	Prober gateway.PathProber
	Logger *logger.CustomLogger
}

func NewEngine(prober gateway.PathProber, log *logger.CustomLogger) *Engine {
	return &Engine{
		Host:   DetectHost(),
		Prober: prober,
		Logger: log,
	}
}

// ValidatePath applies the path rules in order and stops at the first failure
func (e *Engine) ValidatePath(ctx context.Context, value string, opts PathOptions) Outcome {
	blank := strings.TrimSpace(value) == ""
	if opts.Required && blank {
		return Invalid(ReasonPathRequired)
	}
	if blank {
		return Valid()
	}

	if strings.ContainsAny(value, dangerousChars) {
		return Invalid(ReasonPathDangerousChars)
	}

	if strings.Contains(value, "..") {
		return Invalid(ReasonPathTraversal)
	}

	if len(opts.AllowedExtensions) > 0 && !hasAllowedExtension(value, opts.AllowedExtensions) {
		return Invalid(ReasonInvalidExtension)
	}

	if outcome := e.checkHostShape(value); !outcome.Valid {
		return outcome
	}

	if opts.MustExist && !e.pathExists(ctx, value) {
		return Invalid(ReasonPathNotExists)
	}

	return Valid()
}

func (e *Engine) checkHostShape(value string) Outcome {
	if e.Host == HostWindows {
		if !windowsPathRegex.MatchString(value) {
			return Invalid(ReasonInvalidWindowsPath)
		}

		segments := pathSeparators.Split(value, -1)
		fileName := segments[len(segments)-1]
		stem := strings.SplitN(fileName, ".", 2)[0]
		if reservedNames.MatchString(stem) {
			return Invalid(ReasonReservedWindowsName)
		}
		return Valid()
	}

	if !strings.HasPrefix(value, "/") {
		return Invalid(ReasonInvalidUnixPath)
	}
	return Valid()
}

// A failing probe counts as a missing path
func (e *Engine) pathExists(ctx context.Context, value string) bool {
	if e.Prober == nil {
		return false
	}

	exists, err := e.Prober.CheckPathExists(ctx, value)
	if err != nil {
		if e.Logger != nil {
			e.Logger.LogWarn("validate_path", fmt.Sprintf("Could not check if path `%s` exists, treating it as missing - %s", value, err))
		}
		return false
	}
	return exists
}

// Extension is whatever follows the last dot, a value without a dot never matches
func hasAllowedExtension(value string, allowed []string) bool {
	idx := strings.LastIndex(value, ".")
	if idx < 0 {
		return false
	}
	ext := strings.ToLower(value[idx+1:])
	if ext == "" {
		return false
	}
	for _, candidate := range allowed {
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}
