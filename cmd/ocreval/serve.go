package main

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServer(dir, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(dir)),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve an explorer site over HTTP",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "explorer"
			if len(args) == 1 {
				dir = args[0]
			}
			srv := newServer(dir, addr)
			go func() {
				<-cmd.Context().Done()
				srv.Close()
			}()
			a.log.Info("serving", "dir", dir, "url", "http://localhost"+addr+"/")
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
