// Package server adapts an ignitedb database to the RESP (Redis
// serialization protocol) wire format using tidwall/redcon, giving the
// engine a network-facing demonstration without moving any networking
// concern into internal/engine. It supports GET, SET, DEL, and SCAN
// against one *ignitedb.DB.
package server

import (
	"strconv"
	"strings"

	"github.com/tidwall/redcon"
	"go.uber.org/zap"

	"github.com/iamNilotpal/ignitedb/internal/engine"
	"github.com/iamNilotpal/ignitedb/pkg/ignitedb"
)

// Server is a thin RESP front end over one database.
type Server struct {
	db   *ignitedb.DB
	log  *zap.SugaredLogger
	addr string
	srv  *redcon.Server
}

// New constructs a Server bound to db, listening on addr (e.g. ":6380")
// once Start is called.
func New(db *ignitedb.DB, addr string, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{db: db, addr: addr, log: log}
}

// ListenAndServe blocks, accepting connections and handling commands until
// the underlying listener is closed.
func (s *Server) ListenAndServe() error {
	s.srv = redcon.NewServer(s.addr, s.handle, s.accept, s.closed)
	s.log.Infow("resp server listening", "addr", s.addr)
	return s.srv.ListenAndServe()
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Close()
}

func (s *Server) accept(conn redcon.Conn) bool { return true }

func (s *Server) closed(conn redcon.Conn, err error) {
	if err != nil {
		s.log.Debugw("resp connection closed", "remote", conn.RemoteAddr(), "error", err)
	}
}

func (s *Server) handle(conn redcon.Conn, cmd redcon.Command) {
	if len(cmd.Args) == 0 {
		conn.WriteError("ERR empty command")
		return
	}

	switch strings.ToUpper(string(cmd.Args[0])) {
	case "PING":
		conn.WriteString("PONG")

	case "GET":
		if len(cmd.Args) != 2 {
			conn.WriteError("ERR usage: GET key")
			return
		}
		value, err := s.db.Get(cmd.Args[1])
		if err != nil {
			if err == engine.ErrKeyNotFound {
				conn.WriteNull()
				return
			}
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteBulk(value)

	case "SET":
		if len(cmd.Args) != 3 {
			conn.WriteError("ERR usage: SET key value")
			return
		}
		if err := s.db.Put(cmd.Args[1], cmd.Args[2]); err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteString("OK")

	case "DEL":
		if len(cmd.Args) != 2 {
			conn.WriteError("ERR usage: DEL key")
			return
		}
		if err := s.db.Delete(cmd.Args[1]); err != nil {
			conn.WriteError("ERR " + err.Error())
			return
		}
		conn.WriteInt(1)

	case "SCAN":
		prefix := ""
		if len(cmd.Args) >= 2 {
			prefix = string(cmd.Args[1])
		}
		var keys [][]byte
		for _, k := range s.db.ListKeys() {
			if prefix == "" || strings.HasPrefix(string(k), prefix) {
				keys = append(keys, k)
			}
		}
		conn.WriteArray(len(keys))
		for _, k := range keys {
			conn.WriteBulk(k)
		}

	case "DBSIZE":
		conn.WriteInt(s.db.Stat().KeyCount)

	default:
		conn.WriteError("ERR unknown command '" + string(cmd.Args[0]) + "'")
	}
}

// ParseAddr normalizes a bare port ("6380") or host:port string into a
// listen address redcon accepts.
func ParseAddr(addr string) string {
	if _, err := strconv.Atoi(addr); err == nil {
		return ":" + addr
	}
	return addr
}
