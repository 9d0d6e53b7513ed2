package httpx

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without internal err",
			err:  NewAppError(http.StatusBadRequest, CodeParamMissing, "param missing", nil),
			want: "code=2001, message=param missing",
		},
		{
			name: "error with internal err",
			err:  NewAppError(http.StatusInternalServerError, CodeInternalError, "internal error", errors.New("db connection failed")),
			want: "code=5001, message=internal error, err=db connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   int
	}{
		{"unauthorized", ErrUnauthorized(""), http.StatusUnauthorized, CodeUnauthorized},
		{"invalid token", ErrInvalidToken(""), http.StatusUnauthorized, CodeInvalidToken},
		{"forbidden", ErrForbidden(""), http.StatusForbidden, CodeForbidden},
		{"param missing", ErrParamMissing(""), http.StatusBadRequest, CodeParamMissing},
		{"param invalid", ErrParamInvalid(""), http.StatusBadRequest, CodeParamInvalid},
		{"not found", ErrNotFound(""), http.StatusNotFound, CodeNotFound},
		{"already exists", ErrAlreadyExists(""), http.StatusConflict, CodeAlreadyExists},
		{"internal", ErrInternalError("", nil), http.StatusInternalServerError, CodeInternalError},
		{"database", ErrDatabaseError("", nil), http.StatusInternalServerError, CodeDatabaseError},
		{"external", ErrExternalError("", nil), http.StatusBadGateway, CodeExternalError},
		{"external timeout", ErrExternalTimeout("", nil), http.StatusGatewayTimeout, CodeExternalTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.HTTPStatus != tt.wantStatus {
				t.Errorf("Expected HTTP status %d, got %d", tt.wantStatus, tt.err.HTTPStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, tt.err.Code)
			}
			if tt.err.Message == "" {
				t.Error("Expected default message, got empty")
			}
		})
	}
}

func TestErrValidation(t *testing.T) {
	violations := []Violation{
		{Field: "swName", Message: "swName is required"},
		{Field: "owner", Message: "owner must be at least 2 characters"},
	}

	err := ErrValidation(violations)

	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("Expected HTTP status 400, got %d", err.HTTPStatus)
	}
	if err.Code != CodeValidation {
		t.Errorf("Expected code %d, got %d", CodeValidation, err.Code)
	}

	got, ok := err.Data.([]Violation)
	if !ok {
		t.Fatalf("Expected data to carry the violation list, got %T", err.Data)
	}
	if len(got) != 2 || got[0].Field != "swName" {
		t.Errorf("Unexpected violation list: %v", got)
	}
}

func TestWithData(t *testing.T) {
	err := ErrNotFound("").WithData(map[string]int{"id": 4})
	if err.Data == nil {
		t.Error("Expected data to be set")
	}
}
