package validator

import (
	"testing"

	"github.com/bagaskoro/passless/internal/pkg/otpcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Email    string `validate:"required,email"`
	Code     string `validate:"required,otpcode"`
	FullName string `validate:"omitempty,alphaspace"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		err := v.Validate(sampleInput{Email: "ada@example.com", Code: "123456", FullName: "Ada Lovelace"})
		assert.NoError(t, err)
	})

	t.Run("field errors are snake case and translated", func(t *testing.T) {
		err := v.Validate(sampleInput{Email: "nope", Code: "12x456", FullName: "Ada 99"})
		require.Error(t, err)

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)

		values := verr.Values()
		assert.Contains(t, values, "email")
		assert.Equal(t, "Code must be a 6-digit code", values["code"])
		assert.Equal(t, "FullName can contain only letters and spaces", values["full_name"])
	})

	t.Run("otpcode rejects wrong length", func(t *testing.T) {
		err := v.Validate(sampleInput{Email: "ada@example.com", Code: "12345"})
		require.Error(t, err)

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Values(), "code")
	})

	t.Run("alphaspace accepts unicode letters", func(t *testing.T) {
		err := v.Validate(sampleInput{Email: "ada@example.com", Code: "123456", FullName: "José Álvarez"})
		assert.NoError(t, err)
	})

	t.Run("otpcode accepts generated codes", func(t *testing.T) {
		code, err := otpcode.NewNumeric(otpcode.DefaultLength).Generate()
		require.NoError(t, err)
		assert.NoError(t, v.Validate(sampleInput{Email: "ada@example.com", Code: code}))
	})
}

// RegisterDefaultTranslations installs texts for every built-in tag,
// alphaspace included; construction must survive re-registering ours on top.
func TestNewV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)
	require.NotNil(t, v)
}
