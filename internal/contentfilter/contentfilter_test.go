package contentfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault_RejectsShortBody(t *testing.T) {
	f := Default()
	res := f.Evaluate(Request{Body: "too short"})
	assert.False(t, res.Keep)
}

func TestDefault_RejectsLowDensity(t *testing.T) {
	f := Default()
	res := f.Evaluate(Request{Body: "............................................"})
	assert.False(t, res.Keep)
}

func TestDefault_RejectsBoilerplate(t *testing.T) {
	f := Default()
	res := f.Evaluate(Request{Body: "All Rights Reserved."})
	assert.False(t, res.Keep)
}

func TestDefault_KeepsRealContent(t *testing.T) {
	f := Default()
	res := f.Evaluate(Request{Body: "This document describes the onboarding process for new engineers joining the platform team."})
	assert.True(t, res.Keep)
}
