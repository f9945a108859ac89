package ptrx_test

import (
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/ptrx"
	"github.com/stretchr/testify/assert"
)

func TestValueOr(t *testing.T) {
	assert.Equal(t, 10, ptrx.ValueOr[int](nil, 10))
	assert.Equal(t, 3, ptrx.ValueOr(ptrx.Int(3), 10))
	assert.Equal(t, "", ptrx.Value[string](nil))
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, ptrx.NonEmpty(""))
	assert.Equal(t, "x", *ptrx.NonEmpty("x"))
}
