package render

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/observability"
)

func TestConvertPassesSVGThrough(t *testing.T) {
	in := []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	for _, format := range []string{"", FormatSVG} {
		out, err := Convert(context.Background(), in, format, 1)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestConvertRejectsUnknownFormat(t *testing.T) {
	_, err := Convert(context.Background(), nil, "gif", 1)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

type recordingHooks struct {
	observability.NoopRenderHooks
	started, completed []string
	errs               []error
}

func (h *recordingHooks) OnRenderStart(_ context.Context, format string) {
	h.started = append(h.started, format)
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, format string, _ time.Duration, err error) {
	h.completed = append(h.completed, format)
	h.errs = append(h.errs, err)
}

func TestConvertReportsHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetRenderHooks(h)
	t.Cleanup(observability.Reset)

	_, _ = Convert(context.Background(), []byte("<svg/>"), FormatSVG, 1)
	_, _ = Convert(context.Background(), nil, "gif", 1)

	assert.Equal(t, []string{"svg", "gif"}, h.started)
	assert.Equal(t, []string{"svg", "gif"}, h.completed)
	assert.NoError(t, h.errs[0])
	assert.Error(t, h.errs[1])
}
