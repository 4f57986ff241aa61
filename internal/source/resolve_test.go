package source

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://github.com/acme/widgets.git"))
	assert.True(t, IsRemote("git@github.com:acme/widgets.git"))
	assert.True(t, IsRemote("github.com/acme/widgets"))
	assert.True(t, IsRemote("https://example.com/repo"))
	assert.False(t, IsRemote("/home/dev/projects/widgets"))
	assert.False(t, IsRemote(`C:\projects\widgets`))
	assert.False(t, IsRemote("./widgets"))
}

func TestCleanRef(t *testing.T) {
	assert.Equal(t, "/home/dev/widgets", CleanRef(` "/home/dev/widgets" `))
	assert.Equal(t, "/home/dev/widgets", CleanRef(`'/home/dev/widgets'`))
	assert.Equal(t, "", CleanRef(`  ""  `))
}

func TestRepoName(t *testing.T) {
	assert.Equal(t, "widgets", RepoName("https://github.com/acme/widgets.git"))
	assert.Equal(t, "widgets", RepoName("/home/dev/projects/widgets"))
	assert.Equal(t, "widgets", RepoName(`C:\projects\widgets`))
	assert.Equal(t, "widgets", RepoName("/home/dev/projects/widgets/"))
	assert.Equal(t, "widgets", RepoName("widgets"))
}

func TestParseGitHubRef(t *testing.T) {
	owner, repo, err := ParseGitHubRef("https://github.com/acme/widgets.git")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)

	owner, repo, err = ParseGitHubRef("git@github.com:acme/widgets.git")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "widgets", repo)

	_, _, err = ParseGitHubRef("https://example.com/acme/widgets")
	require.Error(t, err)
}

func TestSplitRefs(t *testing.T) {
	refs := SplitRefs("/a/one, \"/b/two\"\n'/c/three',,\n")
	assert.Equal(t, []string{"/a/one", "/b/two", "/c/three"}, refs)

	assert.Nil(t, SplitRefs(""))
	assert.Nil(t, SplitRefs(" , \n "))
}

func TestResolverClassification(t *testing.T) {
	r := NewResolver(NewGitHubClient(""), testLogger())

	src, err := r.Resolve(`"/home/dev/widgets"`)
	require.NoError(t, err)
	local, ok := src.(*LocalSource)
	require.True(t, ok)
	assert.Equal(t, "/home/dev/widgets", local.ID())
	assert.Equal(t, "widgets", local.Name())

	src, err = r.Resolve("https://github.com/acme/widgets.git")
	require.NoError(t, err)
	remote, ok := src.(*GitHubSource)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/acme/widgets.git", remote.ID())
	assert.Equal(t, "widgets", remote.Name())

	_, err = r.Resolve("  ")
	require.Error(t, err)
}

func TestResolverRemoteWithoutClient(t *testing.T) {
	r := NewResolver(nil, testLogger())
	_, err := r.Resolve("https://github.com/acme/widgets")
	require.Error(t, err)
}
