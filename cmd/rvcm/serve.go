// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"net"
	"sync"

	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ezrec/rvcm/bus"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "expose the configured bus through the serial bridge protocol.",
	Long: `Answer bridge requests with transactions on the configured bus, either
on the serial device given by --port or on TCP connections accepted at
--listen. A simulated core served over TCP keeps its state between rvcm
invocations using --backend tcp.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, err := cmd.Flags().GetString("listen")
		if err != nil {
			return err
		}
		port, err := cmd.Flags().GetString("port")
		if err != nil {
			return err
		}
		if (listen == "") == (port == "") {
			return ErrServeEndpoint
		}

		return withBoard(cmd, func(ctx context.Context, bd *board) error {
			shared := bus.NewLocked(bd.Bus)
			if listen != "" {
				return serveTCP(ctx, listen, shared)
			}
			return serveSerial(ctx, port, bd.Config.Baud, shared)
		})
	},
}

func serveSerial(ctx context.Context, port string, baud uint, b bus.Bus) (err error) {
	sp, err := bus.OpenSerialPort(port, baud)
	if err != nil {
		return
	}
	defer sp.Close()

	stop := context.AfterFunc(ctx, func() { sp.Close() })
	defer stop()

	err = bus.Serve(ctx, sp, b)
	if ctx.Err() != nil {
		err = nil
	}
	return
}

func serveTCP(ctx context.Context, address string, b bus.Bus) (err error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return errors.Annotatef(err, "listen %s", address)
	}
	log.Infof("serve: listening on %v", ln.Addr())

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		var conn net.Conn
		conn, err = ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				err = nil
			}
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()

			done := context.AfterFunc(ctx, func() { conn.Close() })
			defer done()

			logger := log.WithField("remote", conn.RemoteAddr().String())
			logger.Debug("serve: connected")
			if err := bus.Serve(ctx, conn, b); err != nil && ctx.Err() == nil {
				logger.Warn(err)
			}
			logger.Debug("serve: disconnected")
		}()
	}
}

func init() {
	serveCmd.Flags().String("listen", "", "TCP host:port to accept bridge connections on")
	serveCmd.Flags().String("port", "", "serial device to answer bridge requests on")
	rootCmd.AddCommand(serveCmd)
}
