package label

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
)

// TCPPrinter envía ZPL crudo al puerto raw (9100) de una impresora de red.
type TCPPrinter struct {
	timeout time.Duration
}

// NewTCPPrinter timeout aplica a la conexión y a la escritura.
func NewTCPPrinter(timeout time.Duration) *TCPPrinter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TCPPrinter{timeout: timeout}
}

var _ labels.Printer = (*TCPPrinter)(nil)

func (p *TCPPrinter) Send(ctx context.Context, addr string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("impresora %s: %w", addr, err)
	}
	defer conn.Close()

	deadline, _ := ctx.Deadline()
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("impresora %s: %w", addr, err)
	}
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("impresora %s: enviar ZPL: %w", addr, err)
	}
	return nil
}
