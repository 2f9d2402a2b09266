package clipboard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	texts []string
	err   error
}

func (r *recordingWriter) WriteAll(text string) error {
	r.texts = append(r.texts, text)
	return r.err
}

func TestOSC52WritesEncodedSequence(t *testing.T) {
	var out bytes.Buffer

	err := OSC52{Out: &out}.WriteAll("#FF5733")
	require.NoError(t, err)

	encoded := base64.StdEncoding.EncodeToString([]byte("#FF5733"))
	require.True(t, strings.HasPrefix(out.String(), "\x1b]52;"), "sequence = %q", out.String())
	require.Contains(t, out.String(), encoded)
}

func TestOSC52TmuxPassthrough(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, OSC52{Out: &out, Tmux: true}.WriteAll("#000000"))
	require.True(t, strings.HasPrefix(out.String(), "\x1bPtmux;"), "sequence = %q", out.String())
}

func TestFallbackUsesPrimaryWhenItSucceeds(t *testing.T) {
	primary := &recordingWriter{}
	secondary := &recordingWriter{}

	require.NoError(t, Fallback{Primary: primary, Secondary: secondary}.WriteAll("#112233"))
	require.Equal(t, []string{"#112233"}, primary.texts)
	require.Empty(t, secondary.texts)
}

func TestFallbackTriesSecondaryOnError(t *testing.T) {
	primary := &recordingWriter{err: errors.New("no xclip")}
	secondary := &recordingWriter{}

	require.NoError(t, Fallback{Primary: primary, Secondary: secondary}.WriteAll("#112233"))
	require.Equal(t, []string{"#112233"}, secondary.texts)
}

func TestFallbackJoinsErrorsWhenBothFail(t *testing.T) {
	first := errors.New("no xclip")
	second := errors.New("closed terminal")

	err := Fallback{
		Primary:   &recordingWriter{err: first},
		Secondary: &recordingWriter{err: second},
	}.WriteAll("#112233")
	require.ErrorIs(t, err, first)
	require.ErrorIs(t, err, second)
}

func TestFallbackWithoutWriters(t *testing.T) {
	require.ErrorIs(t, Fallback{}.WriteAll("x"), ErrUnsupported)

	secondary := &recordingWriter{}
	require.NoError(t, Fallback{Secondary: secondary}.WriteAll("x"))
	require.Equal(t, []string{"x"}, secondary.texts)
}
