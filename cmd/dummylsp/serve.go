package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	"github.com/semrush/lsprpc"
	"github.com/semrush/lsprpc/wsmirror"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		configPath  string
		listMethods bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dummy language server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			handler := lsprpc.NewMapRequestHandler()
			registerHandlers(handler, newBackend())

			if cfg.Verbose {
				handler.Use(lsprpc.LoggingMiddleware(nil))
			}
			if cfg.Metrics {
				handler.Use(lsprpc.PrometheusMiddleware("dummylsp"))
			}

			if listMethods {
				methods := handler.Methods()
				sort.Strings(methods)
				for _, m := range methods {
					fmt.Fprintln(cmd.OutOrStdout(), m)
				}
				return nil
			}

			opts := lsprpc.EndpointOptions{}
			if cfg.MirrorAddr != "" {
				mirror := wsmirror.New()
				opts.Observer = mirror.Publish
				go func() {
					_ = http.ListenAndServe(cfg.MirrorAddr, mirror)
				}()
			}

			ep := lsprpc.NewEndpoint(handler, opts)
			ep.Start(func() io.Writer { return os.Stdout })

			return lsprpc.RunMessageReadLoop(ep, bufio.NewReader(os.Stdin))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "lsprpc.yaml", "path to optional YAML config")
	cmd.Flags().BoolVar(&listMethods, "list-methods", false, "print registered method names and exit")

	return cmd
}
