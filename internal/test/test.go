// Package test contains assertions shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/minilisp"
)

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	require.Truef(t, cond, message, params...)
}

// ExpectError requires e to be *minilisp.Error and returns it.
func ExpectError(t *testing.T, e error) *minilisp.Error {
	t.Helper()
	require.Error(t, e)
	var ee *minilisp.Error
	require.True(t, errors.As(e, &ee), "expecting *minilisp.Error, got %T: %v", e, e)
	return ee
}

func ExpectErrorCode(t *testing.T, expected int, e error) *minilisp.Error {
	t.Helper()
	ee := ExpectError(t, e)
	require.Equal(t, expected, ee.Code, "unexpected error: %s", ee.Message)
	return ee
}
