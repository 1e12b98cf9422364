/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
types:
  - type: user
    bucket: users
    properties:
      - name: email
        key: email_addr
        doc: Primary email address
        format: email
      - name: age
      - name: id
        readonly: true
`

func setupEnv(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0600))

	t.Setenv("KVSTORE_BACKEND", "bolt")
	t.Setenv("KVSTORE_BOLT_PATH", filepath.Join(dir, "kv.db"))
	t.Setenv("KVSTORE_SCHEMA", schemaPath)
	t.Setenv("KVSTORE_LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keyvaluestore version")
}

func TestFieldsCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "fields")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "email_addr")
	assert.Contains(t, lines[1], "Primary email address")
	assert.Contains(t, lines[3], "ro")
}

func TestSetGetShow(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "set", "42", "email", "a@x.com")
	require.NoError(t, err)
	_, err = run(t, "set", "42", "age", "36")
	require.NoError(t, err)

	out, err := run(t, "get", "42", "email")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com\n", out)

	out, err = run(t, "show", "42")
	require.NoError(t, err)
	assert.Equal(t, "boltRecord(email=\"a@x.com\", age=36, id=nil)\n", out)

	_, err = run(t, "set", "42", "email", "nope")
	assert.Error(t, err)

	_, err = run(t, "set", "42", "id", "43")
	assert.Error(t, err)

	_, err = run(t, "get", "42", "missing")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 36, parseValue("36"))
	assert.Equal(t, 1.5, parseValue("1.5"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, "a@x.com", parseValue("a@x.com"))
	assert.Equal(t, "", parseValue(""))
	assert.Nil(t, parseValue("null"))
	assert.Equal(t, "[1, 2]", parseValue("[1, 2]"))
}
