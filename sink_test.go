package formkit_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestProcessingError(t *testing.T) {
	t.Parallel()

	perr := formkit.NewProcessingError("validation", "Try again.", "Unable to find the validation type for the input: age")
	assert.Equal(t, "validation", perr.Type())
	assert.Equal(t, "Try again.", perr.Message())
	assert.Equal(t, "Unable to find the validation type for the input: age", perr.TechnicalMessage())
	assert.Equal(t, "validation: Unable to find the validation type for the input: age", perr.Error())
	assert.Nil(t, perr.Unwrap())

	plain := formkit.NewProcessingError("validation", "Try again.", "")
	assert.Equal(t, "validation: Try again.", plain.Error())

	var err error = perr
	got, ok := formkit.AsProcessingError(err)
	assert.True(t, ok)
	assert.Equal(t, perr, got)

	_, ok = formkit.AsProcessingError(errors.New("other"))
	assert.False(t, ok)
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
	sink := formkit.LogSink(log)
	sink.HandleError(context.Background(), formkit.NewProcessingError("validation", "Try again.", "field: age"))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_type=validation")
	assert.Contains(t, out, `technical_message="field: age"`)
}

func TestMultiSink(t *testing.T) {
	t.Parallel()

	var a, b []string
	sink := formkit.MultiSink(
		formkit.ErrorSinkFunc(func(_ context.Context, err formkit.ProcessingError) { a = append(a, err.Type()) }),
		nil,
		formkit.ErrorSinkFunc(func(_ context.Context, err formkit.ProcessingError) { b = append(b, err.Type()) }),
	)
	sink.HandleError(context.Background(), formkit.NewProcessingError("variant", "m", "t"))

	assert.Equal(t, []string{"variant"}, a)
	assert.Equal(t, []string{"variant"}, b)
}
