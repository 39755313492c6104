package cmd

import (
	"fmt"

	pio "github.com/hangxie/parquet-tools/io"

	"github.com/jac241/pview/service"
)

// ServeCmd is a kong command for serving the HTTP API
type ServeCmd struct {
	URI  string `arg:"" predictor:"file" help:"URI of Parquet file."`
	Addr string `short:"a" default:":8080" help:"Address to listen on (default :8080)."`
	pio.ReadOption
}

// Run starts the HTTP API server
func (s ServeCmd) Run() error {
	svc, err := service.NewDataService(s.URI, s.ReadOption)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer func() { _ = svc.Close() }()

	return service.StartServer(svc, s.Addr)
}
