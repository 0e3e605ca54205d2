// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"io"

	"github.com/cesanta/go-serial/serial"
	"github.com/juju/errors"
	log "github.com/sirupsen/logrus"
)

// Serial is a bridge client: each transaction is one request/response
// exchange with a Serve loop on the other end of the link.
//
// After the first transport error every read returns zero and every
// write is dropped; the error is reported by Err.
type Serial struct {
	link io.ReadWriter
	buf  []byte
	err  error
}

var _ Bus = (*Serial)(nil)

// NewSerial creates a bridge client on an established link.
func NewSerial(link io.ReadWriter) *Serial {
	return &Serial{link: link, buf: make([]byte, 0, 9)}
}

// OpenSerialPort opens a raw 8N1 serial port, for either end of a bridge.
func OpenSerialPort(port string, baud uint) (sp io.ReadWriteCloser, err error) {
	sp, err = serial.Open(serial.OpenOptions{
		PortName:        port,
		BaudRate:        baud,
		DataBits:        8,
		ParityMode:      serial.PARITY_NONE,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		err = errors.Annotatef(err, "open %s", port)
		return
	}
	log.Infof("bus: serial %s @ %d", port, baud)
	return
}

// OpenSerial opens a serial port and creates a bridge client on it.
func OpenSerial(port string, baud uint) (s *Serial, err error) {
	sp, err := OpenSerialPort(port, baud)
	if err != nil {
		return
	}

	s = NewSerial(sp)
	return
}

func (s *Serial) exchange(op byte, addr uint32, value uint32) (result uint32) {
	if s.err != nil {
		return
	}

	s.buf = putRequest(s.buf, op, addr, value)
	if _, err := s.link.Write(s.buf); err != nil {
		s.err = errors.Annotatef(err, "bridge request 0x%08x", addr)
		return
	}

	var status [1]byte
	if _, err := io.ReadFull(s.link, status[:]); err != nil {
		s.err = errors.Annotatef(err, "bridge status 0x%08x", addr)
		return
	}
	if status[0] != BRIDGE_STATUS_OK {
		s.err = errors.Annotatef(ErrBridgeStatus(status[0]), "bridge 0x%08x", addr)
		return
	}

	if op == BRIDGE_OP_READ {
		var err error
		result, err = readUint32(s.link)
		if err != nil {
			s.err = errors.Annotatef(err, "bridge response 0x%08x", addr)
		}
	}

	return
}

func (s *Serial) Read32(addr uint32) uint32 {
	return s.exchange(BRIDGE_OP_READ, addr, 0)
}

func (s *Serial) Write32(addr uint32, value uint32) {
	s.exchange(BRIDGE_OP_WRITE, addr, value)
}

// Err returns the first transport error, if any.
func (s *Serial) Err() error {
	return s.err
}

// Close closes the link if it is closable. Further transactions fail.
func (s *Serial) Close() (err error) {
	if closer, ok := s.link.(io.Closer); ok {
		err = closer.Close()
	}
	if s.err == nil {
		s.err = ErrBridgeClosed
	}
	return
}
