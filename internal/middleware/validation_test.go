package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloodPressureValidator(t *testing.T) {
	RegisterValidators()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	for _, valid := range []string{"120/80", "90/60", "145/95"} {
		assert.NoError(t, v.Var(valid, "bloodpressure"), valid)
	}
	for _, invalid := range []string{"", "120", "120-80", "12080", "abc/def", "1/2"} {
		assert.Error(t, v.Var(invalid, "bloodpressure"), invalid)
	}
}
