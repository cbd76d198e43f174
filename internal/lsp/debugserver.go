package lsp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DebugServer exposes health, metrics, and a symbol dump over plain HTTP,
// separate from the JSON-RPC connection, for operators and local
// development. It never affects the covered core's request/response
// correlation; it only reads from the handler.
type DebugServer struct {
	handler *EditHandler
	srv     *http.Server
}

// NewDebugServer builds the gin router and binds it to addr, but does not
// start serving until Serve is called.
func NewDebugServer(addr string, handler *EditHandler) *DebugServer {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	d := &DebugServer{handler: handler}

	router.GET("/healthz", d.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/symbols", d.handleSymbols)

	d.srv = &http.Server{Addr: addr, Handler: router}
	return d
}

func (d *DebugServer) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// symbolRow is one entry of the /symbols dump.
type symbolRow struct {
	Name          string `json:"name"`
	Qualified     string `json:"qualified"`
	Kind          int    `json:"kind,omitempty"`
	File          string `json:"file"`
}

func (d *DebugServer) handleSymbols(c *gin.Context) {
	gs := d.handler.FinalGS()
	rows := make([]symbolRow, 0)
	for _, entry := range gs.AllSymbols() {
		row := symbolRow{
			Name:      entry.Sym.Name,
			Qualified: gs.QualifiedName(entry.Ref),
			File:      gs.Path(entry.Sym.DefLoc.File),
		}
		rows = append(rows, row)
	}
	c.JSON(http.StatusOK, gin.H{"symbols": rows})
}

// Serve blocks until the server errors or is shut down. http.ErrServerClosed
// from a graceful Shutdown is not an error worth reporting.
func (d *DebugServer) Serve() error {
	if err := d.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (d *DebugServer) Shutdown(ctx context.Context) error {
	return d.srv.Shutdown(ctx)
}
