package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithKeepsSentinelIdentity(t *testing.T) {
	sentinel := New(http.StatusConflict, "time slot already booked")
	cause := errors.New("table 3 busy")

	err := fmt.Errorf("create booking: %w", sentinel.With(cause))

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "create booking: time slot already booked: table 3 busy", err.Error())
}

func TestIsRequiresSameCodeAndMessage(t *testing.T) {
	a := New(http.StatusBadRequest, "bad")
	assert.False(t, errors.Is(New(http.StatusNotFound, "bad"), a))
	assert.False(t, errors.Is(New(http.StatusBadRequest, "other"), a))
	assert.True(t, errors.Is(Wrap(errors.New("x"), http.StatusBadRequest, "bad"), a))
}
