// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package bus

import (
	"encoding/binary"
	"io"
)

// Serial bridge wire format.
//
//	request:  op(1) addr(4, LE) [value(4, LE) when op == BRIDGE_OP_WRITE]
//	response: status(1) [value(4, LE) when op == BRIDGE_OP_READ]
const (
	BRIDGE_OP_READ  = byte('R')
	BRIDGE_OP_WRITE = byte('W')

	BRIDGE_STATUS_OK     = byte(0x00)
	BRIDGE_STATUS_BAD_OP = byte(0x01)
)

func putRequest(buf []byte, op byte, addr uint32, value uint32) []byte {
	buf = append(buf[:0], op)
	buf = binary.LittleEndian.AppendUint32(buf, addr)
	if op == BRIDGE_OP_WRITE {
		buf = binary.LittleEndian.AppendUint32(buf, value)
	}
	return buf
}

func appendUint32(buf []byte, value uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, value)
}

func readUint32(r io.Reader) (value uint32, err error) {
	var word [4]byte
	_, err = io.ReadFull(r, word[:])
	if err != nil {
		return
	}
	value = binary.LittleEndian.Uint32(word[:])
	return
}
