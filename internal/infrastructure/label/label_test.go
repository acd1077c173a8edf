package label

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/labels"
)

func TestZPLRenderer_Render(t *testing.T) {
	r := NewZPLRenderer()
	tpl := "^XA^FO20,20^FD{product_name}^FS^FO20,60^FD{batch_number}^FS^FO20,100^BQN,2,5^FDQA,{qr_code}^FS^XZ"
	out := r.Render(tpl, labels.LabelData{
		ProductName: "Café São João",
		BatchNumber: "L-001",
		QRCodeData:  "https://trace.example.com/public/trace/L-001",
	}, 3)

	assert.Contains(t, out, "^FDCafe Sao Joao^FS")
	assert.Contains(t, out, "^FDL-001^FS")
	assert.Contains(t, out, "QA,https://trace.example.com/public/trace/L-001")
	assert.Equal(t, "^PQ3^XZ", out[len(out)-7:])
}

func TestZPLRenderer_UnknownPlaceholderKept(t *testing.T) {
	out := NewZPLRenderer().Render("^XA^FD{lot_color}^FS^XZ", labels.LabelData{}, 1)
	assert.Equal(t, "^XA^FD{lot_color}^FS^PQ1^XZ", out)
}

func TestWithCopies(t *testing.T) {
	cases := map[string]struct {
		in     string
		copies int
		want   string
	}{
		"agrega antes del cierre": {"^XA^FDx^FS^XZ", 2, "^XA^FDx^FS^PQ2^XZ"},
		"reemplaza PQ previo":     {"^XA^PQ5,0,1,Y^FDx^FS^XZ", 4, "^XA^FDx^FS^PQ4^XZ"},
		"sin cierre":              {"^XA^FDx^FS", 1, "^XA^FDx^FS^PQ1^XZ"},
		"copias cero = una":       {"^XA^XZ", 0, "^XA^PQ1^XZ"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, withCopies(tc.in, tc.copies))
		})
	}
}

func TestZPLValue_NeutralizesCommands(t *testing.T) {
	assert.Equal(t, "Acai  XZ", zplValue("Açaí ^XZ"))
	assert.Equal(t, "a?b", zplValue("a€b"))
}

func TestTCPPrinter_Send(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		b, _ := io.ReadAll(conn)
		received <- string(b)
	}()

	p := NewTCPPrinter(2 * time.Second)
	require.NoError(t, p.Send(context.Background(), ln.Addr().String(), []byte("^XA^PQ1^XZ")))

	select {
	case got := <-received:
		assert.Equal(t, "^XA^PQ1^XZ", got)
	case <-time.After(2 * time.Second):
		t.Fatal("la impresora no recibió datos")
	}
}

func TestTCPPrinter_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	err = NewTCPPrinter(500*time.Millisecond).Send(context.Background(), addr, []byte("^XA^XZ"))
	assert.Error(t, err)
}
