package shared

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	id := GetTraceID(traced)
	require.Len(t, id, 2*TraceIDLength)
	_, err := hex.DecodeString(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, GetTraceID(SetTraceID(ctx)))

	wrongType := context.WithValue(ctx, TraceIDKey, 42)
	assert.Empty(t, GetTraceID(wrongType))
}

func TestFallbackTraceID(t *testing.T) {
	t.Parallel()

	id := fallbackTraceID()
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err)
}

func TestUserIDFromContext(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, ok := UserIDFromContext(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = UserIDFromContext(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	_, ok = UserIDFromContext(context.Background())
	assert.False(t, ok)
}

type signupPayload struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"gte=0"`
}

type checkedPayload struct {
	Name string `json:"name"`
}

func (p checkedPayload) Validate() error {
	if p.Name == "forbidden" {
		return errors.New("name is forbidden")
	}
	return nil
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
		isEmpty bool
	}{
		{name: "valid", body: `{"email":"a@b.co","count":2}`},
		{name: "empty body", body: "", wantErr: true, isEmpty: true},
		{name: "malformed", body: `{"email":`, wantErr: true},
		{name: "unknown field", body: `{"email":"a@b.co","admin":true}`, wantErr: true},
		{name: "trailing data", body: `{"email":"a@b.co"}{"email":"c@d.co"}`, wantErr: true},
		{name: "wrong type", body: `{"count":"two"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p signupPayload
			err := DecodeJSON(req, &p)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "a@b.co", p.Email)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.isEmpty, errors.Is(err, ErrEmptyBody))
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&signupPayload{Email: "a@b.co"}))
	assert.Error(t, ValidateRequest(&signupPayload{Email: "nope"}))
	assert.Error(t, ValidateRequest(&signupPayload{Email: "a@b.co", Count: -1}))

	assert.NoError(t, ValidateRequest(checkedPayload{Name: "ok"}))
	assert.EqualError(t, ValidateRequest(checkedPayload{Name: "forbidden"}), "name is forbidden")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		opts      []ResponseOption
		wantLevel string
	}{
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR"},
		{name: "rate limited", status: http.StatusTooManyRequests, wantLevel: "WARN"},
		{name: "client error", status: http.StatusBadRequest, wantLevel: "DEBUG"},
		{
			name:      "elevated client error",
			status:    http.StatusUnauthorized,
			opts:      []ResponseOption{WithElevatedLogLevel()},
			wantLevel: "WARN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			log, buf := logger.GetTestLogger(t)
			ctx := logger.WithLogger(SetTraceID(context.Background()), log)
			req := httptest.NewRequest(http.MethodGet, "/api/flashcards", nil).WithContext(ctx)
			rec := httptest.NewRecorder()

			err := errors.New("dial tcp: password=swordfish refused")
			RespondWithErrorAndLog(rec, req, tt.status, "Something went wrong", err, tt.opts...)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Something went wrong", body.Error)
			assert.Equal(t, GetTraceID(ctx), body.TraceID)
			assert.NotContains(t, rec.Body.String(), "swordfish")

			logger.AssertLogField(t, buf, "level", tt.wantLevel)
			logger.AssertLogNotContains(t, buf, "swordfish")
		})
	}
}
