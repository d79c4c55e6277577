/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command faultsd serves the demo wallet API behind the fault dispatcher and
// explains how errors would be classified.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"dirpx.dev/faults"
	"dirpx.dev/faults/catalog"
	"dirpx.dev/faults/category"
	"dirpx.dev/faults/config"
	"dirpx.dev/faults/dispatch"
	"dirpx.dev/faults/internal/demo"
	"dirpx.dev/faults/logging"
	"dirpx.dev/faults/msgkey"
)

func main() {
	app := &cli.Command{
		Name:  "faultsd",
		Usage: "uniform error responses for request/response services",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional YAML config file",
				Sources: cli.EnvVars("FAULTS_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			explainCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the demo wallet API",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			gin.SetMode(cfg.Mode)

			logger, err := logging.New(cfg.Mode)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			d, err := newDispatcher(logger, cfg)
			if err != nil {
				return err
			}

			router := demo.NewRouter(logger, d, demo.NewStore(), demo.Options{
				Token:      cfg.AuthToken,
				Registerer: prometheus.DefaultRegisterer,
			})
			router.GET("/metrics", gin.WrapH(promhttp.Handler()))

			srv := &http.Server{Addr: cfg.Addr, Handler: router}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("exception_trace", cfg.ExceptionTrace))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func explainCmd() *cli.Command {
	return &cli.Command{
		Name:      "explain",
		Usage:     "Show which rule and message an error would get",
		ArgsUsage: "<category|foreign> <message>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "status", Usage: "carried status for pass_through"},
			&cli.BoolFlag{Name: "wrap", Usage: "wrap the error with fmt.Errorf first"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("category and message are required")
			}
			kind, msg := cmd.Args().Get(0), cmd.Args().Get(1)

			var err error
			switch kind {
			case "foreign":
				err = errors.New(msg)
			case category.PassThrough.String():
				err = faults.WithStatus(int(cmd.Int("status")), msg)
			default:
				c, perr := category.ParseKnown(kind)
				if perr != nil {
					return perr
				}
				err = faults.E(c, msg)
			}
			if cmd.Bool("wrap") {
				err = fmt.Errorf("explain: %w", err)
			}

			var messages map[string]string
			if path := cmd.String("config"); path != "" {
				if cfg, lerr := config.Load(path); lerr == nil {
					messages = cfg.Messages
				}
			}
			cat, cerr := catalog.New(catalog.WithMessages(messages))
			if cerr != nil {
				return cerr
			}
			d, derr := dispatch.New(zap.NewNop(), cat)
			if derr != nil {
				return derr
			}

			fmt.Println(d.Explain(err))
			res := d.Dispatch(ctx, dispatch.Classify(err), nil)
			for _, r := range d.Rules() {
				if r.Name != res.Rule {
					continue
				}
				for _, k := range []msgkey.Key{r.Key, r.LogKey} {
					if k != msgkey.Empty {
						fmt.Println(cat.Explain(k))
					}
				}
				break
			}
			fmt.Printf("response: status=%d message=%q\n", res.Response.Status, res.Response.Message)
			return nil
		},
	}
}

func newDispatcher(logger *zap.Logger, cfg *config.Config) (*dispatch.Dispatcher, error) {
	cat, err := catalog.New(catalog.WithMessages(cfg.Messages))
	if err != nil {
		return nil, err
	}
	return dispatch.New(logger, cat,
		dispatch.WithTrace(cfg.ExceptionTrace),
		dispatch.WithResolveTimeout(cfg.ResolveTimeout),
		dispatch.WithFallbackMessage(cfg.FallbackMessage),
		dispatch.WithMetrics(prometheus.DefaultRegisterer),
	)
}
