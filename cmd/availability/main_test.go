package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvisburrniku/OrderTable-sub004/internal/auth"
	"github.com/elvisburrniku/OrderTable-sub004/internal/availability"
	"github.com/elvisburrniku/OrderTable-sub004/internal/timeslot"
)

const dinner = `{
  "tables": [
    {"id": 1, "capacity": 2, "label": "T1", "active": true},
    {"id": 2, "capacity": 4, "label": "T2", "active": true}
  ],
  "bookings": [
    {"id": 10, "tableId": 1, "date": "2024-06-01", "startTime": "18:00", "endTime": "20:00", "partySize": 2, "status": "confirmed"}
  ],
  "query": {"date": "2024-06-01", "startTime": "%s", "partySize": 2, "preferredTableId": 1}
}`

func writeFixture(t *testing.T, start string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(dinner, "%s", start, 1)), 0o600))
	return path
}

func run(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		buffer string
		kind   availability.Kind
	}{
		{"buffer overlaps", "21:00", "60m", availability.KindConflictWithAlternative},
		{"shorter buffer clears", "21:00", "30m", availability.KindClear},
		{"after both buffers", "22:00", "60m", availability.KindClear},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run("check", "--fixture", writeFixture(t, tt.start), "--buffer", tt.buffer)
			require.NoError(t, err)

			var d availability.Decision
			require.NoError(t, json.Unmarshal([]byte(out), &d))
			assert.Equal(t, tt.kind, d.Kind)
		})
	}
}

func TestCheckCommandFree(t *testing.T) {
	out, err := run("check", "--fixture", writeFixture(t, "19:00"), "--free")
	require.NoError(t, err)

	var tables []availability.Table
	require.NoError(t, json.Unmarshal([]byte(out), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, "T2", tables[0].Label)
}

func TestCheckCommandErrors(t *testing.T) {
	_, err := run("check", "--fixture", writeFixture(t, "7pm"))
	assert.ErrorIs(t, err, timeslot.ErrInvalidTimeFormat)

	_, err = run("check", "--fixture", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)

	_, err = run("check", "--fixture", writeFixture(t, "21:00"), "--duration", "0s")
	assert.ErrorIs(t, err, availability.ErrInvalidSettings)

	_, err = run("check")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := run("token", "--tenant", "4", "--staff", "maria")
	assert.Error(t, err)

	out, err := run("token", "--tenant", "4", "--staff", "maria", "--secret", "s3cret", "--ttl", "5m")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("s3cret", time.Minute).ParseAndValidate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, int64(4), claims.TenantID)
	assert.Equal(t, "maria", claims.Subject)

	_, err = run("token", "--tenant", "0", "--staff", "maria", "--secret", "s3cret")
	assert.Error(t, err)
}
