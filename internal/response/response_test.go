package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	body := Build(errors.New("template is not uploaded yet"))
	assert.JSONEq(t, `{"error":"template is not uploaded yet"}`, string(body))
}
