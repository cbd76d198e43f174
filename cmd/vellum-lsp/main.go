// Command vellum-lsp runs the checker as a single-threaded LSP server over
// stdio, a TCP socket, or a websocket.
package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/vellum-lang/vellum/internal/config"
	"github.com/vellum-lang/vellum/internal/lsp"
	"github.com/vellum-lang/vellum/internal/pipeline"
)

var (
	socketAddr string
	wsAddr     string
	debugAddr  string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "vellum-lsp",
	Short: "Language server for the covered core's checker",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the LSP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&socketAddr, "socket", "", "listen on a TCP socket instead of stdio")
	serveCmd.Flags().StringVar(&wsAddr, "ws", "", "listen for websocket connections at this address")
	serveCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "expose /healthz, /metrics, /symbols on this address")
	serveCmd.Flags().StringVar(&configPath, "config", "vellum.yaml", "project config file, for the initial workspace index")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// workspaceFiles is the pair of file lists a fresh Server needs for its
// Initialized notification's first full index: opts.inputFileNames and
// opts.payloadFileNames.
type workspaceFiles struct {
	input   []string
	payload []string
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	p := pipeline.NewDefault()
	files := loadWorkspaceFiles(configPath)
	if socketAddr == "" && wsAddr == "" {
		if cfg, err := config.Load(configPath); err == nil {
			socketAddr, wsAddr = cfg.ListenSocket, cfg.ListenWS
		}
	}

	switch {
	case wsAddr != "":
		return serveWebSocket(ctx, wsAddr, p, files)
	case socketAddr != "":
		return serveSocket(ctx, socketAddr, p, files)
	default:
		transport := lsp.NewStdioTransport(os.Stdin, os.Stdout, nil)
		return runOne(ctx, transport, p, files)
	}
}

// loadWorkspaceFiles reads and expands configPath's inputFileNames and
// payloadDir for the Initialized notification's first full index. A
// missing or unparsable config file is not fatal to starting the server:
// it just means the workspace goes unindexed until the client's first
// didChange.
func loadWorkspaceFiles(configPath string) workspaceFiles {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("vellum-lsp: %v; starting with an empty initial index", err)
		return workspaceFiles{}
	}
	input, err := config.ExpandInputFileNames(cfg)
	if err != nil {
		log.Printf("vellum-lsp: %v; starting with an empty initial index", err)
		return workspaceFiles{}
	}
	payload, err := config.ExpandPayloadFileNames(cfg)
	if err != nil {
		log.Printf("vellum-lsp: %v; starting with no payload files", err)
	}
	return workspaceFiles{input: input, payload: payload}
}

func runOne(ctx context.Context, transport lsp.Transport, p pipeline.Pipeline, files workspaceFiles) error {
	server := lsp.NewServer(transport, p, files.input, files.payload)
	if debugAddr != "" {
		go func() {
			if err := lsp.NewDebugServer(debugAddr, server.Handler()).Serve(); err != nil {
				log.Printf("debug server: %v", err)
			}
		}()
	}
	return server.Serve(ctx)
}

func serveSocket(ctx context.Context, addr string, p pipeline.Pipeline, files workspaceFiles) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Printf("vellum-lsp: listening on %s", addr)

	conn, err := ln.Accept()
	if err != nil {
		return err
	}
	defer conn.Close()
	transport := lsp.NewStdioTransport(conn, conn, conn)
	return runOne(ctx, transport, p, files)
}

func serveWebSocket(ctx context.Context, addr string, p pipeline.Pipeline, files workspaceFiles) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/lsp", func(w http.ResponseWriter, r *http.Request) {
		transport, err := lsp.UpgradeWebSocketTransport(w, r)
		if err != nil {
			log.Printf("vellum-lsp: upgrade failed: %v", err)
			return
		}
		defer transport.Close()
		if err := runOne(ctx, transport, p, files); err != nil {
			log.Printf("vellum-lsp: session ended: %v", err)
		}
	})
	log.Printf("vellum-lsp: listening on %s (websocket)", addr)
	return http.ListenAndServe(addr, mux)
}
