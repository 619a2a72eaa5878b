package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"render", "classify", "version"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "choropleth", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRenderCommand_Flags(t *testing.T) {
	for _, name := range []string{"out", "topology-url", "education-url"} {
		assert.NotNil(t, renderCmd.Flags().Lookup(name), "render should have --%s", name)
	}
	assert.Equal(t, "o", renderCmd.Flags().Lookup("out").Shorthand)
}

func TestClassifyCommand_Flags(t *testing.T) {
	for _, name := range []string{"format", "out", "topology-url", "education-url"} {
		assert.NotNil(t, classifyCmd.Flags().Lookup(name), "classify should have --%s", name)
	}
	flag := classifyCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "dev\n", buf.String())
}
