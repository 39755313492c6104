package cmd

import (
	"fmt"

	pio "github.com/hangxie/parquet-tools/io"

	"github.com/jac241/pview/client"
	"github.com/jac241/pview/model"
	"github.com/jac241/pview/session"
	"github.com/jac241/pview/viewer"
)

// ViewCmd is a kong command for the interactive viewer
type ViewCmd struct {
	URI      string `arg:"" optional:"" predictor:"file" help:"URI of Parquet file (optional, press o inside the viewer to open one)."`
	PageSize int64  `short:"n" default:"500" help:"Rows per page."`
	Server   string `help:"Attach to a running pview API server instead of opening a file."`
	pio.ReadOption
}

// Run starts the TUI
func (v ViewCmd) Run() error {
	store, err := sessionStore()
	if err != nil {
		return err
	}

	var open viewer.OpenFunc
	initial := v.URI
	if v.Server != "" {
		// Remote mode: every open dials the same server, whatever the path.
		open = func(string) (viewer.TableSource, error) {
			return client.New(v.Server)
		}
		initial = v.Server
	} else {
		open = func(path string) (viewer.TableSource, error) {
			return model.Open(path, v.ReadOption)
		}
	}

	app := NewViewerApp(open, v.PageSize, store)
	return app.Run(initial)
}

func sessionStore() (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("cannot locate session file: %w", err)
	}
	return session.NewStore(path), nil
}
