package validation

import (
	"context"
	"strings"
)

// Validator checks the current value of a single settings field
type Validator func(ctx context.Context, value string) Outcome

func (e *Engine) ValidateAndroidSdkPath(ctx context.Context, value string) Outcome {
	return e.ValidatePath(ctx, value, PathOptions{MustExist: true, Kind: KindDirectory})
}

func (e *Engine) ValidateDevecoPath(ctx context.Context, value string) Outcome {
	return e.ValidatePath(ctx, value, PathOptions{MustExist: true, Kind: KindDirectory})
}

// ValidateXcodePath also requires the value to look like an Xcode bundle
func (e *Engine) ValidateXcodePath(ctx context.Context, value string) Outcome {
	outcome := e.ValidatePath(ctx, value, PathOptions{MustExist: true, Kind: KindDirectory})
	if !outcome.Valid {
		return outcome
	}
	if strings.TrimSpace(value) == "" {
		return Valid()
	}

	normalized := strings.ToLower(value)
	if !strings.Contains(normalized, "xcode") && !strings.HasSuffix(normalized, ".app") {
		return Invalid(ReasonInvalidXcodePath)
	}
	return Valid()
}

// ValidateExecutablePath restricts extensions to exe/bat/cmd on Windows hosts
func (e *Engine) ValidateExecutablePath(ctx context.Context, value string) Outcome {
	opts := PathOptions{MustExist: true, Kind: KindFile}
	if e.Host == HostWindows {
		opts.AllowedExtensions = []string{"exe", "bat", "cmd"}
	}
	return e.ValidatePath(ctx, value, opts)
}

func (e *Engine) ValidateDirectory(ctx context.Context, value string) Outcome {
	return e.ValidatePath(ctx, value, PathOptions{MustExist: true, Kind: KindDirectory})
}

func (e *Engine) ValidateScreenshotDir(ctx context.Context, value string) Outcome {
	return e.ValidateDirectory(ctx, value)
}
