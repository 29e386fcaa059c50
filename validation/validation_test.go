package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retrySettings struct {
	Limit   int    `validate:"min=0"`
	DelayMS int    `validate:"gt=0"`
	MaxMS   int    `validate:"gtefield=DelayMS"`
	Level   string `validate:"oneof=debug info warn error"`
}

func validSettings() retrySettings {
	return retrySettings{Limit: 10, DelayMS: 1000, MaxMS: 60000, Level: "info"}
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	t.Run("valid struct", func(t *testing.T) {
		assert.NoError(t, v.Validate(validSettings()))
	})

	t.Run("negative limit", func(t *testing.T) {
		s := validSettings()
		s.Limit = -1
		err := v.Validate(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Limit")
	})

	t.Run("ceiling below delay", func(t *testing.T) {
		s := validSettings()
		s.MaxMS = 1
		err := v.Validate(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxMS")
	})

	t.Run("multiple failures aggregated", func(t *testing.T) {
		s := validSettings()
		s.Limit = -1
		s.Level = "loud"
		err := v.Validate(s)
		require.Error(t, err)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Len(t, ve.Errors, 2)
		assert.Contains(t, err.Error(), "2 errors")
	})

	t.Run("field error carries value", func(t *testing.T) {
		s := validSettings()
		s.Level = "loud"
		err := v.Validate(s)

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Len(t, ve.Errors, 1)
		assert.Equal(t, "Level", ve.Errors[0].Field)
		assert.Equal(t, "loud", ve.Errors[0].Value)
	})
}
