package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "source_not_found",
			code:    errors.ErrSourceNotFound,
			message: "AGENTS.md not found",
			wantStr: "[SOURCE_NOT_FOUND] AGENTS.md not found",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "target must be relative",
			wantStr: "[INVALID_INPUT] target must be relative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrConfigValid, "unknown mode %q", "hardlink")
	if err.Message != `unknown mode "hardlink"` {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "cannot write CLAUDE.md")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}
		wantStr := "[FILE_WRITE] cannot write CLAUDE.md: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})

	t.Run("wrapped_fs_error_is_visible", func(t *testing.T) {
		err := errors.Wrapf(fs.ErrPermission, errors.ErrFileAccess, "cannot read %s", "GEMINI.md")
		if !stderrors.Is(err, fs.ErrPermission) {
			t.Error("errors.Is should see the wrapped fs.ErrPermission")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSymlinkUnsupported, "symlink refused").
		WithDetail("target", "/repo/CLAUDE.md").
		WithDetail("source", "/repo/AGENTS.md")

	if err.Details["target"] != "/repo/CLAUDE.md" {
		t.Errorf("WithDetail() target = %v", err.Details["target"])
	}
	if got := errors.GetErrorDetails(err); got["source"] != "/repo/AGENTS.md" {
		t.Errorf("GetErrorDetails() source = %v", got["source"])
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil for plain errors")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrFileRemove, "error 1")
	err2 := errors.New(errors.ErrFileRemove, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrSourceNotFound, "missing"),
			code:     errors.ErrSourceNotFound,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrSourceNotFound, "missing"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_error",
			err:      errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"),
			code:     errors.ErrFileAccess,
			expected: true,
		},
		{
			name:     "plain_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrFileAccess,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrFileAccess,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	if got := errors.GetErrorCode(configErr); got != errors.ErrConfigLoad {
		t.Errorf("GetErrorCode() = %v, want %v", got, errors.ErrConfigLoad)
	}

	var middle *errors.Error
	if !stderrors.As(configErr.Unwrap(), &middle) || middle.Code != errors.ErrFileAccess {
		t.Error("middle error should carry ErrFileAccess")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("should find root cause with errors.Is")
	}

	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want %v", got, errors.ErrUnknown)
	}
}
