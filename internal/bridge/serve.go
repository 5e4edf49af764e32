package bridge

import (
	"context"
	"io"
	"net"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"uv-hotspotter/internal/match"
)

// stdioRWC bridges stdin/stdout into one ReadWriteCloser for the
// embedded-in-host transport.
type stdioRWC struct{}

func (stdioRWC) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioRWC) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioRWC) Close() error                { return os.Stdin.Close() }

func stream(rwc io.ReadWriteCloser) jsonrpc2.ObjectStream {
	return jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
}

// ServeStdio serves one host over stdin/stdout until it disconnects.
// Requests are handled sequentially; a catalog reload never interleaves
// with an in-flight match.
func (s *Server) ServeStdio(ctx context.Context) error {
	conn := jsonrpc2.NewConn(ctx, stream(stdioRWC{}), s)
	defer s.teardown()
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

// ServeTCP accepts host connections on addr, each with its own session.
func ServeTCP(ctx context.Context, addr string, engine *match.Engine, previewSize int) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Info("listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		nc, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go func(nc net.Conn) {
			srv := NewServer(engine, previewSize)
			conn := jsonrpc2.NewConn(ctx, stream(nc), srv)
			<-conn.DisconnectNotify()
			srv.teardown()
		}(nc)
	}
}
