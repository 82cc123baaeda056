package utils

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// GlobalPointer queries the X11 pointer position on the root window. It is
// used when the viewer runs as a desktop background and never receives
// pointer events of its own.
type GlobalPointer struct {
	conn *xgb.Conn
	root xproto.Window
}

func NewGlobalPointer() (*GlobalPointer, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	return &GlobalPointer{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// Position returns the pointer position in root window coordinates.
func (p *GlobalPointer) Position() (int, int, error) {
	reply, err := xproto.QueryPointer(p.conn, p.root).Reply()
	if err != nil {
		return 0, 0, err
	}

	return int(reply.RootX), int(reply.RootY), nil
}

func (p *GlobalPointer) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
