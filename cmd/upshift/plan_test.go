package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestPlan_TextListsOrderedCodemods(t *testing.T) {
	root := projectTree(t, nil)

	stdout, _, err := runCLI(t, "", "plan", "--root", root, "--to", "2.4.0")
	require.NoError(t, err)

	want := "Plan 1.0.0 -> 2.4.0 (no files are read or written)\n" +
		"Codemods:\n" +
		"  - create-app-factory (2.0.0): Replace `new App(...)` with the createApp(...) factory\n" +
		"  - lifecycle-hooks (2.0.0): Rename class lifecycle methods to the onX hook names\n" +
		"  - store-subscribe-once (2.4.0): Rename store.subscribeOnce(...) to store.once(...)\n"
	assert.Equal(t, want, stdout)
	assert.Equal(t, appSource, readFile(t, root+"/src/app.js"))
}

func TestPlan_UpToDate(t *testing.T) {
	root := projectTree(t, nil)

	stdout, _, err := runCLI(t, "", "plan", "--root", root, "--from", "3.0.0")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing to do")
}

func TestPlan_JSON(t *testing.T) {
	root := projectTree(t, nil)

	stdout, _, err := runCLI(t, "", "plan", "--root", root, "--from", "2.4.0", "--json")
	require.NoError(t, err)

	var plan struct {
		From       string `json:"from"`
		To         string `json:"to"`
		Transforms []struct {
			ID      string `json:"id"`
			Release string `json:"release"`
		} `json:"transforms"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))
	assert.Equal(t, "2.4.0", plan.From)
	assert.Equal(t, "3.0.0", plan.To)
	require.Len(t, plan.Transforms, 2)
	assert.Equal(t, "router-history-factory", plan.Transforms[0].ID)
	assert.Equal(t, "3.0.0-beta.1", plan.Transforms[0].Release)
	assert.Equal(t, "testing-package", plan.Transforms[1].ID)
}

func TestPlan_InvalidTarget(t *testing.T) {
	root := projectTree(t, nil)

	_, _, err := runCLI(t, "", "plan", "--root", root, "--to", "v2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid to version "v2"`)
}

func TestList_Text(t *testing.T) {
	stdout, _, err := runCLI(t, "", "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "1.0.0\n  - scoped-packages: Import from the scoped @upshift/* packages instead of upshift/*\n")
	assert.Contains(t, stdout, "3.0.0-beta.1\n  - router-history-factory:")
	assert.NotContains(t, stdout, "->")
}

func TestList_Rules(t *testing.T) {
	stdout, _, err := runCLI(t, "", "list", "--rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "      import_source upshift/core -> @upshift/core\n")
	assert.Contains(t, stdout, "      call new App -> createApp\n")
}

func TestList_YAML(t *testing.T) {
	stdout, _, err := runCLI(t, "", "list", "--format", "yaml")
	require.NoError(t, err)

	var releases []struct {
		Version  string `yaml:"version"`
		Codemods []struct {
			ID string `yaml:"id"`
		} `yaml:"codemods"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &releases))
	require.Len(t, releases, 5)
	assert.Equal(t, "1.0.0", releases[0].Version)
	assert.Equal(t, "3.0.0", releases[4].Version)
	require.Len(t, releases[1].Codemods, 2)
	assert.Equal(t, "lifecycle-hooks", releases[1].Codemods[1].ID)
}
