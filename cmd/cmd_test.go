package cmd

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jac241/pview/model"
)

func Test_ServeCmd_Run_MissingFile(t *testing.T) {
	cmd := ServeCmd{
		URI:  "nonexistent.parquet",
		Addr: ":0",
	}

	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create service")
	assert.ErrorIs(t, err, model.ErrFileNotFound)
}

func Test_ServeCmd_Run_UnsupportedExtension(t *testing.T) {
	cmd := ServeCmd{
		URI:  "data.csv",
		Addr: ":0",
	}

	err := cmd.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnsupportedExtension)
}

func Test_SessionStore(t *testing.T) {
	store, err := sessionStore()
	require.NoError(t, err)
	require.NotNil(t, store)

	// a fresh environment has no saved session, which must not error
	state := store.Load()
	assert.True(t, state.LastOffset >= 0)
}

func Test_ViewCmd_Parse(t *testing.T) {
	var cli struct {
		View ViewCmd `cmd:""`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"view", "data.parquet"})
	require.NoError(t, err)
	assert.Equal(t, "data.parquet", cli.View.URI)
	assert.Equal(t, int64(500), cli.View.PageSize)
	assert.Empty(t, cli.View.Server)

	_, err = parser.Parse([]string{"view", "-n", "100", "--server", "http://localhost:8080"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), cli.View.PageSize)
	assert.Equal(t, "http://localhost:8080", cli.View.Server)
}

func Test_ServeCmd_Parse(t *testing.T) {
	var cli struct {
		Serve ServeCmd `cmd:""`
	}
	parser, err := kong.New(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"serve", "data.parquet"})
	require.NoError(t, err)
	assert.Equal(t, "data.parquet", cli.Serve.URI)
	assert.Equal(t, ":8080", cli.Serve.Addr)

	_, err = parser.Parse([]string{"serve"})
	assert.Error(t, err)
}
