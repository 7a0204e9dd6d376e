package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamErrorMessage(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	cases := []struct {
		err  *UpstreamError
		want string
	}{
		{&UpstreamError{Service: "provider", StatusCode: 404, StatusText: "Not Found"}, "provider: 404 Not Found"},
		{&UpstreamError{Service: "provider", StatusCode: 502, StatusText: "Bad Gateway", Err: cause}, "provider: 502 Bad Gateway: boom"},
		{&UpstreamError{Service: "chat", Err: cause}, "chat: boom"},
		{&UpstreamError{Service: "chat"}, "chat: upstream failure"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Error())
	}
}

func TestErrorsUnwrapThroughWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("fetch article 1: %w", &TransportError{Service: "content provider", Err: cause})

	var transport *TransportError
	require.True(t, errors.As(err, &transport))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "content provider unreachable: dial tcp: refused", transport.Error())

	parseErr := fmt.Errorf("tags: %w", &ParseError{Raw: "nope", Err: cause})
	var parse *ParseError
	require.True(t, errors.As(parseErr, &parse))
	assert.Equal(t, "nope", parse.Raw)
}
