package signal

import "github.com/dkeye/Lobby/internal/protocol"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, protocol.NewPong())
}
